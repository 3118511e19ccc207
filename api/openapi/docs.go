// Package openapi 注册 swagger 文档，由 /swagger/*any 提供
package openapi

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/users": {
            "post": {"tags": ["users"], "summary": "注册用户", "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterRequest"}}], "responses": {"201": {"description": "Created"}, "400": {"description": "ValidationError"}, "409": {"description": "ConflictError"}}}
        },
        "/users/c/{username}": {
            "get": {"tags": ["users"], "summary": "频道资料", "parameters": [{"in": "path", "name": "username", "type": "string", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "NotFoundError"}}}
        },
        "/videos": {
            "get": {"tags": ["videos"], "summary": "视频列表", "parameters": [{"$ref": "#/parameters/page"}, {"$ref": "#/parameters/limit"}, {"in": "query", "name": "userId", "type": "integer"}, {"in": "query", "name": "query", "type": "string"}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["videos"], "summary": "发布视频", "security": [{"BearerAuth": []}], "consumes": ["multipart/form-data"], "parameters": [{"in": "formData", "name": "videoFile", "type": "file", "required": true}, {"in": "formData", "name": "thumbnail", "type": "file", "required": true}, {"in": "formData", "name": "title", "type": "string", "required": true}, {"in": "formData", "name": "description", "type": "string", "required": true}, {"in": "formData", "name": "duration", "type": "number"}], "responses": {"201": {"description": "Created"}, "400": {"description": "ValidationError"}, "401": {"description": "AuthorizationError"}, "503": {"description": "DependencyError"}}}
        },
        "/videos/{videoId}": {
            "get": {"tags": ["videos"], "summary": "视频详情", "parameters": [{"$ref": "#/parameters/videoId"}], "responses": {"200": {"description": "OK"}, "404": {"description": "NotFoundError"}}},
            "patch": {"tags": ["videos"], "summary": "更新视频", "security": [{"BearerAuth": []}], "consumes": ["multipart/form-data"], "parameters": [{"$ref": "#/parameters/videoId"}, {"in": "formData", "name": "title", "type": "string"}, {"in": "formData", "name": "description", "type": "string"}, {"in": "formData", "name": "thumbnail", "type": "file"}], "responses": {"200": {"description": "OK"}, "403": {"description": "AuthorizationError"}, "404": {"description": "NotFoundError"}}},
            "delete": {"tags": ["videos"], "summary": "删除视频", "security": [{"BearerAuth": []}], "parameters": [{"$ref": "#/parameters/videoId"}], "responses": {"200": {"description": "OK"}, "403": {"description": "AuthorizationError"}, "404": {"description": "NotFoundError"}}}
        },
        "/videos/toggle/publish/{videoId}": {
            "patch": {"tags": ["videos"], "summary": "切换发布状态", "security": [{"BearerAuth": []}], "parameters": [{"$ref": "#/parameters/videoId"}], "responses": {"200": {"description": "OK"}, "403": {"description": "AuthorizationError"}}}
        },
        "/comments/{videoId}": {
            "get": {"tags": ["comments"], "summary": "视频评论列表", "parameters": [{"$ref": "#/parameters/videoId"}, {"$ref": "#/parameters/page"}, {"$ref": "#/parameters/limit"}], "responses": {"200": {"description": "OK"}, "404": {"description": "NotFoundError"}}},
            "post": {"tags": ["comments"], "summary": "发表评论", "security": [{"BearerAuth": []}], "parameters": [{"$ref": "#/parameters/videoId"}, {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/ContentRequest"}}], "responses": {"201": {"description": "Created"}, "404": {"description": "NotFoundError"}}}
        },
        "/comments/c/{commentId}": {
            "patch": {"tags": ["comments"], "summary": "修改评论", "security": [{"BearerAuth": []}], "parameters": [{"in": "path", "name": "commentId", "type": "integer", "required": true}, {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/ContentRequest"}}], "responses": {"200": {"description": "OK"}, "403": {"description": "AuthorizationError"}}},
            "delete": {"tags": ["comments"], "summary": "删除评论", "security": [{"BearerAuth": []}], "parameters": [{"in": "path", "name": "commentId", "type": "integer", "required": true}], "responses": {"200": {"description": "OK"}, "403": {"description": "AuthorizationError"}}}
        },
        "/tweets": {
            "get": {"tags": ["tweets"], "summary": "动态列表", "parameters": [{"$ref": "#/parameters/page"}, {"$ref": "#/parameters/limit"}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["tweets"], "summary": "发布动态", "security": [{"BearerAuth": []}], "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/ContentRequest"}}], "responses": {"201": {"description": "Created"}}}
        },
        "/tweets/user/{userId}": {
            "get": {"tags": ["tweets"], "summary": "用户动态列表", "parameters": [{"in": "path", "name": "userId", "type": "integer", "required": true}, {"$ref": "#/parameters/page"}, {"$ref": "#/parameters/limit"}], "responses": {"200": {"description": "OK"}, "404": {"description": "NotFoundError"}}}
        },
        "/tweets/{tweetId}": {
            "patch": {"tags": ["tweets"], "summary": "修改动态", "security": [{"BearerAuth": []}], "parameters": [{"in": "path", "name": "tweetId", "type": "integer", "required": true}, {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/ContentRequest"}}], "responses": {"200": {"description": "OK"}, "403": {"description": "AuthorizationError"}}},
            "delete": {"tags": ["tweets"], "summary": "删除动态", "security": [{"BearerAuth": []}], "parameters": [{"in": "path", "name": "tweetId", "type": "integer", "required": true}], "responses": {"200": {"description": "OK"}, "403": {"description": "AuthorizationError"}}}
        },
        "/playlist": {
            "post": {"tags": ["playlist"], "summary": "创建播放列表", "security": [{"BearerAuth": []}], "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/PlaylistRequest"}}], "responses": {"201": {"description": "Created"}}}
        },
        "/playlist/user/{userId}": {
            "get": {"tags": ["playlist"], "summary": "用户播放列表", "parameters": [{"in": "path", "name": "userId", "type": "integer", "required": true}, {"$ref": "#/parameters/page"}, {"$ref": "#/parameters/limit"}], "responses": {"200": {"description": "OK"}}}
        },
        "/playlist/{playlistId}": {
            "get": {"tags": ["playlist"], "summary": "播放列表详情", "parameters": [{"$ref": "#/parameters/playlistId"}, {"$ref": "#/parameters/page"}, {"$ref": "#/parameters/limit"}], "responses": {"200": {"description": "OK"}, "404": {"description": "NotFoundError"}}},
            "patch": {"tags": ["playlist"], "summary": "修改播放列表", "security": [{"BearerAuth": []}], "parameters": [{"$ref": "#/parameters/playlistId"}, {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/PlaylistRequest"}}], "responses": {"200": {"description": "OK"}, "403": {"description": "AuthorizationError"}}},
            "delete": {"tags": ["playlist"], "summary": "删除播放列表", "security": [{"BearerAuth": []}], "parameters": [{"$ref": "#/parameters/playlistId"}], "responses": {"200": {"description": "OK"}, "403": {"description": "AuthorizationError"}}}
        },
        "/playlist/add/{videoId}/{playlistId}": {
            "patch": {"tags": ["playlist"], "summary": "添加视频到播放列表", "security": [{"BearerAuth": []}], "parameters": [{"$ref": "#/parameters/videoId"}, {"$ref": "#/parameters/playlistId"}], "responses": {"200": {"description": "OK"}, "403": {"description": "AuthorizationError"}}}
        },
        "/playlist/remove/{videoId}/{playlistId}": {
            "patch": {"tags": ["playlist"], "summary": "从播放列表移除视频", "security": [{"BearerAuth": []}], "parameters": [{"$ref": "#/parameters/videoId"}, {"$ref": "#/parameters/playlistId"}], "responses": {"200": {"description": "OK"}, "403": {"description": "AuthorizationError"}}}
        },
        "/likes/toggle/v/{videoId}": {
            "post": {"tags": ["likes"], "summary": "点赞/取消点赞视频", "security": [{"BearerAuth": []}], "parameters": [{"$ref": "#/parameters/videoId"}], "responses": {"200": {"description": "OK"}, "404": {"description": "NotFoundError"}}}
        },
        "/likes/toggle/c/{commentId}": {
            "post": {"tags": ["likes"], "summary": "点赞/取消点赞评论", "security": [{"BearerAuth": []}], "parameters": [{"in": "path", "name": "commentId", "type": "integer", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "NotFoundError"}}}
        },
        "/likes/toggle/t/{tweetId}": {
            "post": {"tags": ["likes"], "summary": "点赞/取消点赞动态", "security": [{"BearerAuth": []}], "parameters": [{"in": "path", "name": "tweetId", "type": "integer", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "NotFoundError"}}}
        },
        "/likes/videos": {
            "get": {"tags": ["likes"], "summary": "我点赞过的视频", "security": [{"BearerAuth": []}], "parameters": [{"$ref": "#/parameters/page"}, {"$ref": "#/parameters/limit"}], "responses": {"200": {"description": "OK"}, "401": {"description": "AuthorizationError"}}}
        },
        "/subscriptions/c/{channelId}": {
            "get": {"tags": ["subscriptions"], "summary": "频道订阅者", "parameters": [{"in": "path", "name": "channelId", "type": "integer", "required": true}, {"$ref": "#/parameters/page"}, {"$ref": "#/parameters/limit"}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["subscriptions"], "summary": "订阅/取消订阅频道", "security": [{"BearerAuth": []}], "parameters": [{"in": "path", "name": "channelId", "type": "integer", "required": true}], "responses": {"200": {"description": "OK"}, "400": {"description": "ValidationError"}, "404": {"description": "NotFoundError"}}}
        },
        "/subscriptions/u/{subscriberId}": {
            "get": {"tags": ["subscriptions"], "summary": "用户订阅的频道", "parameters": [{"in": "path", "name": "subscriberId", "type": "integer", "required": true}, {"$ref": "#/parameters/page"}, {"$ref": "#/parameters/limit"}], "responses": {"200": {"description": "OK"}}}
        },
        "/search/videos": {
            "get": {"tags": ["search"], "summary": "搜索视频", "parameters": [{"in": "query", "name": "q", "type": "string", "required": true}, {"in": "query", "name": "userId", "type": "integer"}, {"$ref": "#/parameters/page"}, {"$ref": "#/parameters/limit"}], "responses": {"200": {"description": "OK"}, "400": {"description": "ValidationError"}}}
        }
    },
    "parameters": {
        "page": {"in": "query", "name": "page", "type": "integer", "default": 1},
        "limit": {"in": "query", "name": "limit", "type": "integer", "default": 10},
        "videoId": {"in": "path", "name": "videoId", "type": "integer", "required": true},
        "playlistId": {"in": "path", "name": "playlistId", "type": "integer", "required": true}
    },
    "definitions": {
        "RegisterRequest": {
            "type": "object",
            "required": ["user_name", "email", "full_name", "password"],
            "properties": {
                "user_name": {"type": "string"},
                "email": {"type": "string"},
                "full_name": {"type": "string"},
                "password": {"type": "string"},
                "avatar": {"type": "string"},
                "bio": {"type": "string"}
            }
        },
        "ContentRequest": {
            "type": "object",
            "required": ["content"],
            "properties": {"content": {"type": "string"}}
        },
        "PlaylistRequest": {
            "type": "object",
            "properties": {"name": {"type": "string"}, "description": {"type": "string"}}
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "输入格式: Bearer {token}",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "VidTube API",
	Description:      "视频分享平台读模型与写操作 API",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

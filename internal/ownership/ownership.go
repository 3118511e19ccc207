// Package ownership 写操作前的归属校验，纯函数，不访问存储。
package ownership

import (
	"reflect"

	apperrors "vidtube/internal/errors"
)

// Owned 拥有单一所有者的实体
type Owned interface {
	OwnerRef() int64
}

// Decision 授权结果
type Decision int

const (
	Denied Decision = iota
	Allowed
)

func (d Decision) String() string {
	if d == Allowed {
		return "allowed"
	}
	return "denied"
}

// Authorize 仅当调用者存在且等于实体所有者时放行
func Authorize(entity Owned, callerID *int64) Decision {
	if isNil(entity) || callerID == nil {
		return Denied
	}
	if entity.OwnerRef() == *callerID {
		return Allowed
	}
	return Denied
}

// isNil 同时识别接口 nil 与装着 nil 指针的接口
func isNil(entity Owned) bool {
	if entity == nil {
		return true
	}
	v := reflect.ValueOf(entity)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// Require 将拒绝转换为授权错误：匿名调用者 401，非所有者 403
// what 用于错误信息，例如 "comment"
func Require(entity Owned, callerID *int64, what string) error {
	if Authorize(entity, callerID) == Allowed {
		return nil
	}
	if callerID == nil {
		return apperrors.Unauthorized("authentication required to modify " + what)
	}
	return apperrors.Forbidden("you are not the owner of this " + what)
}

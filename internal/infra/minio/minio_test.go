package minio

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicURL(t *testing.T) {
	assert.Equal(t, "http://127.0.0.1:9000/media/videos/1/a.mp4",
		PublicURL("", "127.0.0.1:9000", false, "media", "videos/1/a.mp4"))
	assert.Equal(t, "https://s3.example.com/media/a.jpg",
		PublicURL("", "s3.example.com", true, "media", "a.jpg"))
	assert.Equal(t, "https://cdn.example.com/media/a.jpg",
		PublicURL("https://cdn.example.com/", "ignored:9000", false, "media", "a.jpg"))
}

func TestPublicReadPolicyIsValidJSON(t *testing.T) {
	var policy struct {
		Statement []struct {
			Action   []string `json:"Action"`
			Resource []string `json:"Resource"`
		} `json:"Statement"`
	}
	require.NoError(t, json.Unmarshal([]byte(publicReadPolicy("vidtube-media")), &policy))
	require.Len(t, policy.Statement, 1)
	assert.Equal(t, []string{"s3:GetObject"}, policy.Statement[0].Action)
	assert.Equal(t, []string{"arn:aws:s3:::vidtube-media/*"}, policy.Statement[0].Resource)
}

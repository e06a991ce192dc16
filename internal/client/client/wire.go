package client

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/dmitrijs2005/sharelink/internal/client/models"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type uploadResponse struct {
	ViewURL   string `json:"viewUrl"`
	ExpiresAt string `json:"expiresAt"`
}

type metadataResponse struct {
	ShortID          string  `json:"shortId"`
	OriginalFilename string  `json:"originalFilename"`
	UploadType       string  `json:"uploadType"`
	TextContent      *string `json:"textContent"`
	ExpiresAt        string  `json:"expiresAt"`
}

type errorResponse struct {
	Message string `json:"message"`
}

// Zone-less timestamps are read in local time, the way a browser's Date does.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
}

func parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable timestamp %q", s)
}

func decodeUploadResult(status int, body []byte) (*models.UploadResult, error) {
	var r uploadResponse
	if err := json.Unmarshal(body, &r); err != nil {
		return nil, malformedError(status, "upload response: %v", err)
	}

	u, err := url.Parse(r.ViewURL)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return nil, malformedError(status, "upload response: viewUrl %q is not an absolute URL", r.ViewURL)
	}

	expiresAt, err := parseTimestamp(r.ExpiresAt)
	if err != nil {
		return nil, malformedError(status, "upload response: expiresAt: %v", err)
	}

	return &models.UploadResult{ViewURL: r.ViewURL, ExpiresAt: expiresAt}, nil
}

func decodeMetadata(status int, body []byte) (*models.ContentMetadata, error) {
	var r metadataResponse
	if err := json.Unmarshal(body, &r); err != nil {
		return nil, malformedError(status, "metadata response: %v", err)
	}

	if r.ShortID == "" {
		return nil, malformedError(status, "metadata response: missing shortId")
	}

	ut := models.UploadType(r.UploadType)
	if !ut.Valid() {
		return nil, malformedError(status, "metadata response: unknown uploadType %q", r.UploadType)
	}

	expiresAt, err := parseTimestamp(r.ExpiresAt)
	if err != nil {
		return nil, malformedError(status, "metadata response: expiresAt: %v", err)
	}

	return &models.ContentMetadata{
		ShortID:          r.ShortID,
		OriginalFilename: r.OriginalFilename,
		UploadType:       ut,
		TextContent:      r.TextContent,
		ExpiresAt:        expiresAt,
	}, nil
}

// decodeErrorMessage pulls {"message": "..."} out of an error body. Anything
// else yields an empty message.
func decodeErrorMessage(body []byte) string {
	var r errorResponse
	if err := json.Unmarshal(body, &r); err != nil {
		return ""
	}
	return strings.TrimSpace(r.Message)
}

package handler

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	appErrors "github.com/Loggy-dot/Student-Management-system/pkg/errors"
	"github.com/Loggy-dot/Student-Management-system/pkg/storage"
)

const profilePictureField = "profilePicture"

// Uploader stores profile pictures sent as multipart form files.
type Uploader struct {
	store        *storage.LocalStorage
	maxBytes     int64
	allowedMIMEs map[string]struct{}
	publicPrefix string
}

// NewUploader builds an Uploader. Files are served back under publicPrefix.
func NewUploader(store *storage.LocalStorage, maxBytes int64, allowedMIMEs []string, publicPrefix string) *Uploader {
	allowed := make(map[string]struct{}, len(allowedMIMEs))
	for _, m := range allowedMIMEs {
		allowed[strings.ToLower(m)] = struct{}{}
	}
	if publicPrefix == "" {
		publicPrefix = "/uploads"
	}
	return &Uploader{store: store, maxBytes: maxBytes, allowedMIMEs: allowed, publicPrefix: strings.TrimRight(publicPrefix, "/")}
}

func isMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "multipart/form-data")
}

// ProfilePicture saves the profilePicture file if one was sent and returns its public path.
// An absent file yields "".
func (u *Uploader) ProfilePicture(c *gin.Context) (string, error) {
	if u == nil || !isMultipart(c) {
		return "", nil
	}
	header, err := c.FormFile(profilePictureField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return "", nil
		}
		return "", appErrors.Wrap(err, appErrors.ErrValidation, "invalid profilePicture upload")
	}
	if u.maxBytes > 0 && header.Size > u.maxBytes {
		return "", appErrors.Clone(appErrors.ErrPayloadTooLarge, "profilePicture exceeds the upload limit")
	}
	if !u.allowed(header.Header.Get("Content-Type")) {
		return "", appErrors.Validation("Only image files are allowed")
	}

	file, err := header.Open()
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal, "failed to read upload")
	}
	defer file.Close() //nolint:errcheck

	// The declared type is client controlled; the leading bytes must agree.
	head := make([]byte, 512)
	n, err := io.ReadFull(file, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", appErrors.Wrap(err, appErrors.ErrInternal, "failed to read upload")
	}
	head = head[:n]
	if !u.allowed(http.DetectContentType(head)) {
		return "", appErrors.Validation("Only image files are allowed")
	}

	name, err := u.store.SaveUpload(profilePictureField, header.Filename, io.MultiReader(bytes.NewReader(head), file))
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal, "failed to store upload")
	}
	return u.publicPrefix + "/" + name, nil
}

// Discard deletes a picture stored by ProfilePicture whose record was never written.
func (u *Uploader) Discard(publicPath string) {
	if u == nil || publicPath == "" {
		return
	}
	_ = u.store.Delete(strings.TrimPrefix(publicPath, u.publicPrefix+"/"))
}

func (u *Uploader) allowed(contentType string) bool {
	mime := strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	if !strings.HasPrefix(mime, "image/") {
		return false
	}
	if len(u.allowedMIMEs) == 0 {
		return true
	}
	_, ok := u.allowedMIMEs[mime]
	return ok
}

package validation

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"mime"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/webp"
)

var (
	ErrInvalidMimeType = errors.New("unsupported file type")
	ErrTooManyFiles    = errors.New("too many attachments")
	ErrPayloadTooLarge = errors.New("upload too large")
)

// CheckedFile is an uploaded image that passed validation, with dimensions
// when they could be read.
type CheckedFile struct {
	Header *multipart.FileHeader
	Mime   string
	Width  *int
	Height *int
}

// CheckAttachments validates uploaded files against the allowed image MIME
// types and count limit. Size is enforced earlier by MaxBytesReader on the
// request body.
func CheckAttachments(fileHeaders []*multipart.FileHeader, allowedMimes []string, maxFiles int) ([]CheckedFile, error) {
	if len(fileHeaders) == 0 {
		return nil, nil
	}
	if maxFiles > 0 && len(fileHeaders) > maxFiles {
		return nil, fmt.Errorf("%w: at most %d files", ErrTooManyFiles, maxFiles)
	}

	allowed := make(map[string]bool, len(allowedMimes))
	for _, m := range allowedMimes {
		allowed[m] = true
	}

	var checked []CheckedFile
	for _, fileHeader := range fileHeaders {
		mimeType, err := DetectMimeType(fileHeader)
		if err != nil {
			return nil, err
		}
		if !allowed[mimeType] {
			return nil, fmt.Errorf("%w: %s (file: %s)", ErrInvalidMimeType, mimeType, fileHeader.Filename)
		}

		width, height := imageDimensions(fileHeader, mimeType)
		checked = append(checked, CheckedFile{
			Header: fileHeader,
			Mime:   mimeType,
			Width:  width,
			Height: height,
		})
	}
	return checked, nil
}

// DetectMimeType uses the part's Content-Type, falling back to the filename
// extension when the browser sent nothing useful.
func DetectMimeType(fileHeader *multipart.FileHeader) (string, error) {
	mimeType := fileHeader.Header.Get("Content-Type")

	if mimeType == "" || mimeType == "application/octet-stream" {
		ext := filepath.Ext(fileHeader.Filename)
		if detected := mime.TypeByExtension(ext); detected != "" {
			mimeType = detected
		}
	}

	if mimeType == "" {
		return "", fmt.Errorf("could not detect MIME type for file: %s", fileHeader.Filename)
	}
	return mimeType, nil
}

func imageDimensions(fileHeader *multipart.FileHeader, mimeType string) (*int, *int) {
	if !strings.HasPrefix(mimeType, "image/") {
		return nil, nil
	}
	file, err := fileHeader.Open()
	if err != nil {
		return nil, nil
	}
	defer file.Close()

	cfg, _, err := image.DecodeConfig(file)
	if err != nil {
		return nil, nil
	}
	width, height := cfg.Width, cfg.Height
	return &width, &height
}

// LimitRequest caps the request body before multipart parsing; exceeding the
// limit surfaces as ErrPayloadTooLarge.
func LimitRequest(w http.ResponseWriter, r *http.Request, maxSize int64) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)
	if err := r.ParseMultipartForm(maxSize); err != nil {
		return fmt.Errorf("%w: failed to parse multipart form", ErrPayloadTooLarge)
	}
	return nil
}

package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"churn-insight-service/internal/core/domain"

	"github.com/gin-gonic/gin"
)

const uploadField = "file"

// readDataset parses the CSV sent in the multipart "file" field.
func (h *Handler) readDataset(c *gin.Context) (*domain.Dataset, error) {
	header, err := c.FormFile(uploadField)
	if err != nil {
		return nil, uploadError(err)
	}

	f, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedDataset, err)
	}
	defer f.Close()

	ds, err := h.datasetSvc.Parse(f)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, domain.ErrUploadTooLarge
		}
		return nil, err
	}
	return ds, nil
}

func uploadError(err error) error {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return domain.ErrUploadTooLarge
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		return domain.ErrEmptyInput
	default:
		return fmt.Errorf("%w: %v", domain.ErrMalformedDataset, err)
	}
}

// optionalInt reads an integer form or query value. ok is false when absent.
func optionalInt(c *gin.Context, key string) (value int, ok bool, err error) {
	raw, present := c.GetPostForm(key)
	if !present {
		raw, present = c.GetQuery(key)
	}
	if !present || raw == "" {
		return 0, false, nil
	}
	value, err = strconv.Atoi(raw)
	if err != nil {
		return 0, false, err
	}
	return value, true, nil
}

func formOrQuery(c *gin.Context, key string) string {
	if v, ok := c.GetPostForm(key); ok {
		return v
	}
	return c.Query(key)
}

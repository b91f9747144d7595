package v1

import (
	"bytes"
	"encoding/json"
	"io"
	"strconv"
	"strings"
	"time"

	"portfolio-cms-backend/internal/domain"
	"portfolio-cms-backend/pkg/apperror"
	"portfolio-cms-backend/pkg/validation"

	"github.com/gin-gonic/gin"
)

// bindJSON binds the body into req and records a validation error on failure.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.Error(apperror.Validation("Validation failed", validation.FormatValidationErrors(err)...))
		return false
	}
	return true
}

// bindForm is bindJSON for multipart form fields.
func bindForm(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBind(req); err != nil {
		c.Error(apperror.Validation("Validation failed", validation.FormatValidationErrors(err)...))
		return false
	}
	return true
}

func parseID(c *gin.Context, param string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil || id <= 0 {
		c.Error(apperror.BadRequest("Invalid " + param))
		return 0, false
	}
	return id, true
}

// pageFromQuery reads page/limit. An offset without a page must sit on a page
// boundary of the effective limit so the returned rows start at that offset.
func pageFromQuery(c *gin.Context) (domain.PageRequest, bool) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	page, _ := strconv.Atoi(c.Query("page"))
	if page == 0 {
		if raw, ok := c.GetQuery("offset"); ok && raw != "" {
			offset, err := strconv.Atoi(raw)
			size := domain.NewPageRequest(1, limit).Limit
			if err != nil || offset < 0 || offset%size != 0 {
				c.Error(apperror.BadRequest("Invalid offset: must be a multiple of limit"))
				return domain.PageRequest{}, false
			}
			page = offset/size + 1
		}
	}
	return domain.NewPageRequest(page, limit), true
}

func queryBool(c *gin.Context, key string) bool {
	v, err := strconv.ParseBool(c.Query(key))
	return err == nil && v
}

func queryOptionalBool(c *gin.Context, key string) (*bool, bool) {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return nil, true
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid " + key))
		return nil, false
	}
	return &v, true
}

func queryInt64(c *gin.Context, key string) (*int64, bool) {
	raw := c.Query(key)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v <= 0 {
		c.Error(apperror.BadRequest("Invalid " + key))
		return nil, false
	}
	return &v, true
}

func queryInt(c *gin.Context, key string) (*int, bool) {
	raw := c.Query(key)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid " + key))
		return nil, false
	}
	return &v, true
}

func queryFloat(c *gin.Context, key string) (*float64, bool) {
	raw := c.Query(key)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid " + key))
		return nil, false
	}
	return &v, true
}

// queryInt64List accepts "1,2,3" as well as repeated keys.
func queryInt64List(c *gin.Context, key string) ([]int64, bool) {
	var out []int64
	for _, raw := range c.QueryArray(key) {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			v, err := strconv.ParseInt(part, 10, 64)
			if err != nil || v <= 0 {
				c.Error(apperror.BadRequest("Invalid " + key))
				return nil, false
			}
			out = append(out, v)
		}
	}
	return out, true
}

func currentActor(c *gin.Context) domain.Actor {
	actor, _ := domain.ActorFromContext(c.Request.Context())
	return actor
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// readUpload returns nil when the form carries no file under field.
func readUpload(c *gin.Context, field string, maxBytes int64) (*domain.ImageUpload, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, nil
	}
	if maxBytes > 0 && fh.Size > maxBytes {
		return nil, apperror.BadRequest("File too large. Maximum size is " + strconv.FormatInt(maxBytes>>20, 10) + " MB")
	}
	f, err := fh.Open()
	if err != nil {
		return nil, apperror.BadRequest("Unable to read uploaded file")
	}
	defer f.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, f); err != nil {
		return nil, apperror.BadRequest("Unable to read uploaded file")
	}
	return &domain.ImageUpload{Filename: fh.Filename, Data: buf.Bytes()}, nil
}

var dateLayouts = []string{"2006-01-02", time.RFC3339}

func parseDate(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// Date accepts "2006-01-02" or RFC 3339.
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	t, err := parseDate(s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// NullableDate remembers whether the key was present, so an explicit null
// can be told apart from an absent field.
type NullableDate struct {
	Set   bool
	Value *time.Time
}

func (d *NullableDate) UnmarshalJSON(b []byte) error {
	d.Set = true
	if string(b) == "null" {
		d.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		d.Value = nil
		return nil
	}
	t, err := parseDate(s)
	if err != nil {
		return err
	}
	d.Value = &t
	return nil
}

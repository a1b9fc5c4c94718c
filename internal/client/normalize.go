package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"feedback-backend/internal/models"
)

// Tree returns the response as a generic JSON value shaped like
// {"ok": ..., "status": ..., "data": <body>}, the form ExtractFeedback probes.
func (r *Result) Tree() (interface{}, error) {
	var body interface{}
	if len(bytes.TrimSpace(r.Data)) > 0 {
		dec := json.NewDecoder(bytes.NewReader(r.Data))
		dec.UseNumber()
		if err := dec.Decode(&body); err != nil {
			return nil, &TransportError{Op: "decoding response", Err: err}
		}
	}
	return map[string]interface{}{
		"ok":     r.OK,
		"status": json.Number(fmt.Sprint(r.Status)),
		"data":   body,
	}, nil
}

// ExtractFeedback finds the feedback array in a response. The canonical
// shape is data.data.items. The remaining probes accept the envelope shapes
// older servers produced and are checked in this order:
//
//	data.data.items -> data.data.feedback -> data.data -> data.feedback -> data -> response
//
// Deprecated shapes: everything after data.data.items. Remove the fallbacks
// once no deployed server emits them.
// Anything else yields an empty list.
func ExtractFeedback(response interface{}) []models.Feedback {
	data := field(response, "data")
	inner := field(data, "data")

	candidates := []interface{}{
		field(inner, "items"),
		field(inner, "feedback"),
		inner,
		field(data, "feedback"),
		data,
		response,
	}
	for _, c := range candidates {
		if arr, ok := c.([]interface{}); ok {
			return toFeedback(arr)
		}
	}
	return []models.Feedback{}
}

func field(v interface{}, key string) interface{} {
	m, ok := v.(map[string]interface{})
	if !ok {
		return nil
	}
	return m[key]
}

// wireFeedback tolerates numeric ids from auto-increment legacy stores and
// ratings sent as strings or fractions.
type wireFeedback struct {
	ID          flexibleID
	Name        string
	Email       string
	ProductName string
	Comment     string
	Rating      flexibleRating
	CreatedAt   flexibleTime
}

// fields maps each wire key to the value it decodes into.
func (w *wireFeedback) fields() map[string]interface{} {
	return map[string]interface{}{
		"id":           &w.ID,
		"name":         &w.Name,
		"email":        &w.Email,
		"product_name": &w.ProductName,
		"comment":      &w.Comment,
		"rating":       &w.Rating,
		"created_at":   &w.CreatedAt,
	}
}

type flexibleID string

func (f *flexibleID) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = flexibleID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("feedback id must be a string or number: %w", err)
	}
	*f = flexibleID(n.String())
	return nil
}

// flexibleRating accepts 4, 3.5 or "4". Fractions round to the nearest
// integer; anything unparseable reads as 0.
type flexibleRating int

func (f *flexibleRating) UnmarshalJSON(b []byte) error {
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		var s string
		if json.Unmarshal(b, &s) != nil {
			*f = 0
			return nil
		}
		n = json.Number(strings.TrimSpace(s))
	}
	v, err := strconv.ParseFloat(string(n), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		*f = 0
		return nil
	}
	*f = flexibleRating(math.Round(v))
	return nil
}

// flexibleTime also reads the "YYYY-MM-DD hh:mm:ss" form SQL drivers emit.
// Unparseable values decode as the zero time rather than dropping the record.
type flexibleTime time.Time

var timeLayouts = []string{time.RFC3339Nano, "2006-01-02 15:04:05", "2006-01-02T15:04:05"}

func (f *flexibleTime) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil || s == "" {
		return nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			*f = flexibleTime(t)
			return nil
		}
	}
	return nil
}

// toFeedback keeps every object in arr. A field that does not decode is left
// at its zero value; non-object entries are not records and are skipped.
func toFeedback(arr []interface{}) []models.Feedback {
	out := make([]models.Feedback, 0, len(arr))
	for _, item := range arr {
		obj, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		var w wireFeedback
		for key, dst := range w.fields() {
			decodeField(obj[key], dst)
		}
		out = append(out, models.Feedback{
			ID:          string(w.ID),
			Name:        w.Name,
			Email:       w.Email,
			ProductName: w.ProductName,
			Comment:     w.Comment,
			Rating:      int(w.Rating),
			CreatedAt:   time.Time(w.CreatedAt),
		})
	}
	return out
}

func decodeField(v interface{}, dst interface{}) {
	if v == nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	_ = json.Unmarshal(raw, dst)
}

package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stefan-korn/csv2geojson"
	"github.com/stefan-korn/csv2geojson/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext() *ServerContext {
	return NewServerContext(&config.Config{})
}

func postCSV(target, body string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	r.Header.Set("Content-Type", "text/csv")
	return r
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["error"]
}

func TestHandleConvert(t *testing.T) {
	rec := httptest.NewRecorder()
	testContext().HandleConvert(rec, postCSV("/api/convert", "name,lon,lat\nA,6.77,51.22\n"))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/geo+json", rec.Header().Get("Content-Type"))

	var fc csv2geojson.FeatureCollection
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fc))
	assert.Equal(t, "FeatureCollection", fc.Type)
	require.Len(t, fc.Features, 1)
	assert.Equal(t, []float64{6.77, 51.22}, fc.Features[0].Geometry.Coordinates)

	name, ok := fc.Features[0].Properties.Get("name")
	require.True(t, ok)
	assert.Equal(t, "A", name)
}

func TestHandleConvertQueryOptions(t *testing.T) {
	target := "/api/convert?name=stops&geo=x,y&delimiter=%3B&header-offset=1&bbox=true"
	body := "exported 2026-08-01\nid;x;y\n1;1;2\n2;3;4\n"

	rec := httptest.NewRecorder()
	testContext().HandleConvert(rec, postCSV(target, body))

	require.Equal(t, http.StatusOK, rec.Code)

	var fc csv2geojson.FeatureCollection
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fc))
	assert.Equal(t, "stops", fc.Name)
	assert.Equal(t, []float64{1, 2, 3, 4}, fc.BBox)
	require.Len(t, fc.Features, 2)
	assert.Equal(t, []float64{3, 4}, fc.Features[1].Geometry.Coordinates)
}

func TestHandleConvertLatLonOrder(t *testing.T) {
	rec := httptest.NewRecorder()
	testContext().HandleConvert(rec, postCSV("/api/convert?latlon-order=true", "id,point\n1,\"51.22,6.77\"\n"))

	require.Equal(t, http.StatusOK, rec.Code)

	var fc csv2geojson.FeatureCollection
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fc))
	assert.Equal(t, []float64{6.77, 51.22}, fc.Features[0].Geometry.Coordinates)
}

func TestHandleConvertMethodNotAllowed(t *testing.T) {
	rec := httptest.NewRecorder()
	testContext().HandleConvert(rec, httptest.NewRequest(http.MethodGet, "/api/convert", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, http.MethodPost, rec.Header().Get("Allow"))
	assert.NotEmpty(t, decodeError(t, rec))
}

func TestHandleConvertNoGeoColumns(t *testing.T) {
	rec := httptest.NewRecorder()
	testContext().HandleConvert(rec, postCSV("/api/convert", "id,name\n1,A\n"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeError(t, rec), "no geo columns")
}

func TestHandleConvertMalformedCSV(t *testing.T) {
	rec := httptest.NewRecorder()
	testContext().HandleConvert(rec, postCSV("/api/convert", "lon,lat\n1,2,3\n"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NotEmpty(t, decodeError(t, rec))
}

func TestHandleConvertInvalidQuery(t *testing.T) {
	for _, target := range []string{
		"/api/convert?header-offset=abc",
		"/api/convert?header-offset=-1",
		"/api/convert?latlon-order=maybe",
		"/api/convert?bbox=maybe",
	} {
		rec := httptest.NewRecorder()
		testContext().HandleConvert(rec, postCSV(target, "lon,lat\n1,2\n"))
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestHandleConvertBodyTooLarge(t *testing.T) {
	ctx := NewServerContext(&config.Config{MaxBodyBytes: 16})

	rec := httptest.NewRecorder()
	ctx.HandleConvert(rec, postCSV("/api/convert", "lon,lat\n1,2\n3,4\n5,6\n"))

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestHandleDefaults(t *testing.T) {
	rec := httptest.NewRecorder()
	testContext().HandleDefaults(rec, httptest.NewRequest(http.MethodGet, "/api/defaults", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string][]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, csv2geojson.DefaultGeoColumns, body["default_geo_columns"])
}

func TestHandleDefaultsFromConfig(t *testing.T) {
	ctx := NewServerContext(&config.Config{DefaultGeoColumns: []string{"east", "north"}})

	rec := httptest.NewRecorder()
	ctx.HandleDefaults(rec, httptest.NewRequest(http.MethodGet, "/api/defaults", nil))

	var body map[string][]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []string{"east", "north"}, body["default_geo_columns"])
}

func TestHandleHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	testContext().HandleHealth(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestRequestLogger(t *testing.T) {
	handler := RequestLogger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

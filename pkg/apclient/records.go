package apclient

import (
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/yonnyZer0/apify/pkg/apclient/aperr"
)

// directUploadThresholdBytes is the compressed-size boundary between the
// server-proxied upload and the signed-URL direct upload. It must match the
// threshold the platform itself applies (256 KiB); payloads whose gzipped
// size reaches it are routed to object storage.
const directUploadThresholdBytes = 256 * 1024

// defaultRecordContentType is used when RecordParams.ContentType is unset.
const defaultRecordContentType = "text/plain; charset=utf-8"

// RecordParams describes one record to store with SetRecord.
type RecordParams struct {
	// Key identifies the record within the store.
	Key string
	// Body is the record payload. It is gzipped on the wire; the platform
	// decompresses it on receipt.
	Body []byte
	// ContentType defaults to "text/plain; charset=utf-8" when empty.
	ContentType string
}

// SetRecord stores a record. The body is gzip-compressed and, depending on
// the compressed size, either PUT through the API server or uploaded
// directly to object storage via a signed URL obtained from the
// direct-upload-url endpoint. Exactly one or exactly two requests are
// issued; there is no retry and no fallback between the two paths.
func (kc *KeyValueStoreClient) SetRecord(ctx context.Context, params RecordParams) error {
	if err := requireNonEmpty("store id", kc.id); err != nil {
		return err
	}
	if err := requireNonEmpty("record key", params.Key); err != nil {
		return err
	}
	if len(params.Body) == 0 {
		return aperr.New(aperr.CodeInvalidParameter, fmt.Errorf("record body must be non-empty"))
	}
	contentType := params.ContentType
	if contentType == "" {
		contentType = defaultRecordContentType
	}

	compressed, err := gzipBytes(params.Body)
	if err != nil {
		return fmt.Errorf("compress record body: %w", err)
	}

	headers := map[string]string{
		"Content-Type":     contentType,
		"Content-Encoding": "gzip",
	}

	if !exceedsDirectUploadThreshold(len(compressed)) {
		_, err := kc.c.do(ctx, requestSpec{
			method:  http.MethodPut,
			path:    kc.recordPath(params.Key),
			body:    compressed,
			headers: headers,
		}, nil)
		return err
	}

	signedURL, err := kc.directUploadURL(ctx, params.Key, contentType)
	if err != nil {
		return err
	}
	_, err = kc.c.do(ctx, requestSpec{
		method:  http.MethodPut,
		rawURL:  signedURL,
		body:    compressed,
		headers: headers,
		noAuth:  true,
	}, nil)
	return err
}

// exceedsDirectUploadThreshold decides the upload path from the gzipped
// payload size. The boundary itself belongs to the direct-upload side.
func exceedsDirectUploadThreshold(compressedSize int) bool {
	return compressedSize >= directUploadThresholdBytes
}

// directUploadURL asks the platform for a signed URL permitting one direct
// write to the backing object storage.
func (kc *KeyValueStoreClient) directUploadURL(ctx context.Context, key, contentType string) (string, error) {
	var out struct {
		SignedURL string `json:"signedUrl"`
	}
	spec := requestSpec{
		method:  http.MethodGet,
		path:    kc.recordPath(key) + "/direct-upload-url",
		headers: map[string]string{"Content-Type": contentType},
	}
	if _, err := kc.c.do(ctx, spec, &out); err != nil {
		return "", err
	}
	if out.SignedURL == "" {
		return "", aperr.New(aperr.CodeMalformedResponse,
			fmt.Errorf("direct-upload-url response is missing data.signedUrl"))
	}
	return out.SignedURL, nil
}

// gzipBytes compresses b into a standard gzip container.
func gzipBytes(b []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(b); err != nil {
		zw.Close()
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// gunzipBytes reverses gzipBytes. Used by tests and by callers that fetch
// records stored with Content-Encoding: gzip from other clients.
func gunzipBytes(b []byte) ([]byte, error) {
	zr, err := gzip.NewReader(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	return io.ReadAll(zr)
}

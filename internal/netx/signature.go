package netx

import "net/url"

// signatureParams are the query keys holding the request signature, in the
// order they are checked: S3 and MinIO, GCS, then V2-style URLs.
var signatureParams = []string{"X-Amz-Signature", "X-Goog-Signature", "Signature"}

// SignatureOf returns the signature component of a signed URL, or "" when
// there is none.
func SignatureOf(signedURL string) string {
	u, err := url.Parse(signedURL)
	if err != nil {
		return ""
	}
	q := u.Query()
	for _, k := range signatureParams {
		if v := q.Get(k); v != "" {
			return v
		}
	}
	return ""
}

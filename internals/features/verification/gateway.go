// internals/features/verification/gateway.go
package verification

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/bytedance/sonic"

	"absensiku_backend/internals/helpers/errs"
)

/* =========================================================
 * Gateway ke face/risk service eksternal.
 * Timeout bounded; timeout/unreachable → ErrVerificationUnavailable
 * (retryable), tidak pernah di-default-kan jadi "approved".
 * ========================================================= */

type LivenessResult struct {
	LivenessPassed bool    `json:"liveness_passed"`
	LivenessScore  float64 `json:"liveness_score"`
}

type VerifyResult struct {
	MatchPassed bool    `json:"match_passed"`
	MatchScore  float64 `json:"match_score"`
}

type EnrollResult struct {
	Success      bool    `json:"success"`
	TemplateHash string  `json:"template_hash"`
	QualityScore float64 `json:"quality_score"`
}

type RiskRequest struct {
	LivenessScore   *float64               `json:"liveness_score,omitempty"`
	FaceMatchScore  *float64               `json:"face_match_score,omitempty"`
	DeviceSignature *string                `json:"device_signature,omitempty"`
	Geolocation     map[string]interface{} `json:"geolocation,omitempty"`
}

type RiskResponse struct {
	RiskScore       float64            `json:"risk_score"`
	RiskLevel       string             `json:"risk_level"`
	SignalBreakdown map[string]float64 `json:"signal_breakdown"`
	Recommendations []string           `json:"recommendations"`
}

// Client diabstraksi supaya decision engine bisa dites tanpa service beneran.
type Client interface {
	Liveness(ctx context.Context, image, challengeType string) (*LivenessResult, error)
	Verify(ctx context.Context, image, referenceHash string) (*VerifyResult, error)
	Enroll(ctx context.Context, image string, consent bool) (*EnrollResult, error)
	AssessRisk(ctx context.Context, req RiskRequest) (*RiskResponse, error)
}

type HTTPClient struct {
	baseURL string
	http    *http.Client
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) Liveness(ctx context.Context, image, challengeType string) (*LivenessResult, error) {
	payload := map[string]interface{}{
		"challenge_response": NormalizeImage(image),
		"challenge_type":     challengeType,
	}
	var out LivenessResult
	if err := c.post(ctx, "/liveness/check", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Verify(ctx context.Context, image, referenceHash string) (*VerifyResult, error) {
	payload := map[string]interface{}{
		"image":                   NormalizeImage(image),
		"reference_template_hash": referenceHash,
	}
	var out VerifyResult
	if err := c.post(ctx, "/face/verify", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Enroll(ctx context.Context, image string, consent bool) (*EnrollResult, error) {
	payload := map[string]interface{}{
		"image":   NormalizeImage(image),
		"consent": consent,
	}
	var out EnrollResult
	if err := c.post(ctx, "/face/enroll", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) AssessRisk(ctx context.Context, req RiskRequest) (*RiskResponse, error) {
	var out RiskResponse
	if err := c.post(ctx, "/risk/assess", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) post(ctx context.Context, path string, payload, out interface{}) error {
	body, err := sonic.Marshal(payload)
	if err != nil {
		return errs.Internal(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return errs.Internal(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if isUnavailable(err) {
			log.Printf("[WARN] face service unreachable (%s): %v", path, err)
			return errs.ErrVerificationUnavailable
		}
		return errs.Internal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		log.Printf("[WARN] face service %s → %d", path, resp.StatusCode)
		return errs.ErrVerificationUnavailable
	}
	if resp.StatusCode != http.StatusOK {
		return errs.New(errs.KindInternal, "verification_error",
			fmt.Sprintf("face service %s returned %d", path, resp.StatusCode))
	}

	buf := new(bytes.Buffer)
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		return errs.ErrVerificationUnavailable
	}
	if err := sonic.Unmarshal(buf.Bytes(), out); err != nil {
		return errs.Internal(err)
	}
	return nil
}

// isUnavailable: timeout / DNS / connection refused → retryable.
func isUnavailable(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return true
	}
	var ue *url.Error
	return errors.As(err, &ue)
}

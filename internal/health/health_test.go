package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"connectrpc.com/connect"
	"connectrpc.com/grpchealth"
	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-task-time-predictor/internal/domain"
)

func testArtifacts() *domain.ModelArtifacts {
	return &domain.ModelArtifacts{
		Model:            domain.ModelArtifact{Name: "model", Digest: "aa"},
		LabelEncoders:    domain.ModelArtifact{Name: "label_encoders", Digest: "bb"},
		TimeLabelEncoder: domain.ModelArtifact{Name: "time_label_encoder", Digest: "cc"},
	}
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name       string
		artifacts  *domain.ModelArtifacts
		wantStatus Status
		wantDigest bool
	}{
		{
			name:       "artifacts loaded",
			artifacts:  testArtifacts(),
			wantStatus: StatusHealthy,
			wantDigest: true,
		},
		{
			name:       "artifacts missing",
			artifacts:  nil,
			wantStatus: StatusUnhealthy,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := NewChecker(nil, "v1.2.3", tt.artifacts).Check(context.Background())

			if status.Status != tt.wantStatus {
				t.Errorf("Status = %s, want %s", status.Status, tt.wantStatus)
			}
			if status.Version != "v1.2.3" {
				t.Errorf("Version = %q, want %q", status.Version, "v1.2.3")
			}
			if _, ok := status.Checks["redis"]; ok {
				t.Error("redis check reported without a client")
			}
			if tt.wantDigest && status.Artifacts["model"] != "aa" {
				t.Errorf("Artifacts[model] = %q, want %q", status.Artifacts["model"], "aa")
			}
		})
	}
}

func TestHandlers(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		artifacts  *domain.ModelArtifacts
		path       string
		wantStatus int
	}{
		{name: "live always ok", artifacts: nil, path: "/health/live", wantStatus: http.StatusOK},
		{name: "ready healthy", artifacts: testArtifacts(), path: "/health/ready", wantStatus: http.StatusOK},
		{name: "ready unhealthy", artifacts: nil, path: "/health/ready", wantStatus: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checker := NewChecker(nil, "test", tt.artifacts)

			router := gin.New()
			router.GET("/health/live", checker.LiveHandler())
			router.GET("/health/ready", checker.ReadyHandler())

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}

			var body map[string]any
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("failed to decode body: %v", err)
			}
			if _, ok := body["status"]; !ok {
				t.Errorf("body missing status: %s", w.Body.String())
			}
		})
	}
}

func TestGRPCChecker(t *testing.T) {
	tests := []struct {
		name       string
		artifacts  *domain.ModelArtifacts
		service    string
		wantStatus grpchealth.Status
		wantCode   connect.Code
	}{
		{name: "overall serving", artifacts: testArtifacts(), service: "", wantStatus: grpchealth.StatusServing},
		{name: "named service serving", artifacts: testArtifacts(), service: ServiceName, wantStatus: grpchealth.StatusServing},
		{name: "not serving without artifacts", artifacts: nil, service: ServiceName, wantStatus: grpchealth.StatusNotServing},
		{name: "unknown service", artifacts: testArtifacts(), service: "billing", wantCode: connect.CodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checker := &grpcChecker{checker: NewChecker(nil, "test", tt.artifacts)}

			resp, err := checker.Check(context.Background(), &grpchealth.CheckRequest{Service: tt.service})
			if tt.wantCode != 0 {
				var connectErr *connect.Error
				if !errors.As(err, &connectErr) || connectErr.Code() != tt.wantCode {
					t.Fatalf("error = %v, want code %v", err, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if resp.Status != tt.wantStatus {
				t.Errorf("Status = %v, want %v", resp.Status, tt.wantStatus)
			}
		})
	}
}

func TestGRPCHandlerPath(t *testing.T) {
	path, handler := NewChecker(nil, "test", testArtifacts()).GRPCHandler()

	if path != grpchealth.HealthV1ServiceName+"/" && path != "/"+grpchealth.HealthV1ServiceName+"/" {
		t.Errorf("path = %q, want health service path", path)
	}
	if handler == nil {
		t.Error("handler is nil")
	}
}

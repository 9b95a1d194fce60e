package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"skyward-mro/shopfloor/internal/config"
	"skyward-mro/shopfloor/internal/models/dtos"
	"skyward-mro/shopfloor/internal/registry"
	"skyward-mro/shopfloor/internal/seed"
)

func setupTestServer(t *testing.T) (*httptest.Server, *registry.Registry) {
	t.Helper()

	reg := registry.New()
	if err := seed.Load(reg); err != nil {
		t.Fatalf("failed to seed registry: %v", err)
	}

	cfg := &config.Config{JWTSecret: []byte("test-secret")}
	deps, err := InitDependencies(cfg, reg, nil)
	if err != nil {
		t.Fatalf("failed to init dependencies: %v", err)
	}
	h := NewHandlers(deps)

	r := chi.NewRouter()
	r.Post("/parts", h.IntakePart())
	r.Get("/parts/{id}", h.GetPart())
	r.Post("/parts/{id}/start", h.StartRepair())
	r.Post("/parts/{id}/complete", h.CompleteRepair())
	r.Post("/parts/{id}/ship", h.ShipPart())

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, reg
}

func postJSON(t *testing.T, url string, payload any) (*http.Response, map[string]any) {
	t.Helper()

	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	var envelope dtos.APIResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	data, _ := envelope.Data.(map[string]any)
	return resp, data
}

func TestPartLifecycleOverHTTP(t *testing.T) {
	srv, _ := setupTestServer(t)

	resp, data := postJSON(t, srv.URL+"/parts", dtos.IntakeRequest{
		PartNumber:     "HYD-PUMP-01",
		WorkOrder:      "WO-9001",
		Aircraft:       "N123AB",
		Customer:       "Skyward Airlines",
		Priority:       "high",
		EstimatedHours: 4,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("intake returned %d", resp.StatusCode)
	}
	partID, _ := data["id"].(string)
	if partID == "" {
		t.Fatal("intake response carries no part id")
	}
	if data["status"] != "unrepaired" {
		t.Errorf("new part status = %v, want unrepaired", data["status"])
	}

	resp, data = postJSON(t, srv.URL+"/parts/"+partID+"/start", dtos.StartRepairRequest{TechnicianID: "tech1"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("start returned %d", resp.StatusCode)
	}
	if data["status"] != "in-repair" {
		t.Errorf("status after start = %v, want in-repair", data["status"])
	}

	resp, data = postJSON(t, srv.URL+"/parts/"+partID+"/complete", dtos.CompleteRepairRequest{ActualHours: 3.5})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("complete returned %d", resp.StatusCode)
	}
	if data["status"] != "repaired" {
		t.Errorf("status after complete = %v, want repaired", data["status"])
	}

	// completing twice is a workflow conflict, not a validation error
	resp, _ = postJSON(t, srv.URL+"/parts/"+partID+"/complete", dtos.CompleteRepairRequest{ActualHours: 1})
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("second complete returned %d, want %d", resp.StatusCode, http.StatusConflict)
	}

	resp, data = postJSON(t, srv.URL+"/parts/"+partID+"/ship", struct{}{})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("ship returned %d", resp.StatusCode)
	}
	if data["status"] != "shipped" {
		t.Errorf("status after ship = %v, want shipped", data["status"])
	}
}

func TestCompleteRequiresActualHours(t *testing.T) {
	srv, reg := setupTestServer(t)

	_, data := postJSON(t, srv.URL+"/parts", dtos.IntakeRequest{
		PartNumber: "VALVE-2", WorkOrder: "WO-9002", Priority: "medium", EstimatedHours: 2,
	})
	partID, _ := data["id"].(string)
	if _, err := reg.StartRepair(partID, "tech2"); err != nil {
		t.Fatalf("start failed: %v", err)
	}

	resp, _ := postJSON(t, srv.URL+"/parts/"+partID+"/complete", dtos.CompleteRepairRequest{ActualHours: 0})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("complete without hours returned %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}
}

func TestGetPartUnknownID(t *testing.T) {
	srv, _ := setupTestServer(t)

	resp, err := http.Get(srv.URL + "/parts/no-such-part")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown part returned %d, want %d", resp.StatusCode, http.StatusNotFound)
	}
}

func TestStartRepairUnknownTechnician(t *testing.T) {
	srv, _ := setupTestServer(t)

	_, data := postJSON(t, srv.URL+"/parts", dtos.IntakeRequest{
		PartNumber: "SENSOR-7", WorkOrder: "WO-9003", Priority: "low", EstimatedHours: 1,
	})
	partID := fmt.Sprintf("%v", data["id"])

	resp, _ := postJSON(t, srv.URL+"/parts/"+partID+"/start", dtos.StartRepairRequest{TechnicianID: "ghost"})
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown technician returned %d, want %d", resp.StatusCode, http.StatusNotFound)
	}
}

package request

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
)

func TestCreateClosureRequestRejectsOmittedCountedCash(t *testing.T) {
	var req CreateClosureRequest
	body := []byte(`{"date":"2026-03-15","cash_out":50}`)

	if err := binding.JSON.BindBody(body, &req); err == nil {
		t.Fatal("submission without counted_cash should fail validation")
	}
}

func TestCreateClosureRequestAcceptsEmptyDrawerCount(t *testing.T) {
	var req CreateClosureRequest
	body := []byte(`{"date":"2026-03-15","cash_out":50,"counted_cash":0}`)

	if err := binding.JSON.BindBody(body, &req); err != nil {
		t.Fatalf("explicit zero count should bind: %v", err)
	}
	if req.CountedCash == nil || *req.CountedCash != 0 {
		t.Errorf("counted_cash = %v, want 0", req.CountedCash)
	}
}

func TestCreateClosureRequestRejectsNegativeCountedCash(t *testing.T) {
	var req CreateClosureRequest
	body := []byte(`{"date":"2026-03-15","counted_cash":-5}`)

	if err := binding.JSON.BindBody(body, &req); err == nil {
		t.Fatal("negative counted_cash should fail validation")
	}
}

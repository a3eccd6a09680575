package service

import (
	"testing"
	"time"

	"github.com/lumierestudio/salon-api/internal/infrastructure/repository"
	"github.com/lumierestudio/salon-api/pkg/apperror"
	"gorm.io/gorm"
)

func newClientService(db *gorm.DB) *ClientService {
	return NewClientService(
		repository.NewClientRepository(db),
		repository.NewClientHistoryRepository(db),
		16,
	)
}

func TestCreateClientFamily(t *testing.T) {
	db := newTestDB(t)
	svc := newClientService(db)

	marie, err := svc.CreateClient(ctx(), &CreateClientInput{
		FirstName: "Marie",
		LastName:  "Dupont",
	})
	if err != nil {
		t.Fatalf("create parent: %v", err)
	}
	if !marie.Independent {
		t.Error("client without a parent should be independent")
	}

	birthDate := time.Now().AddDate(-8, 0, 0)
	leo, err := svc.CreateClient(ctx(), &CreateClientInput{
		FirstName: "Léo",
		LastName:  "Dupont",
		BirthDate: &birthDate,
		ParentID:  &marie.ID,
	})
	if err != nil {
		t.Fatalf("create dependent: %v", err)
	}
	if leo.Independent {
		t.Error("an 8-year-old with a parent should be a dependent")
	}
	if leo.ParentID == nil || *leo.ParentID != marie.ID {
		t.Error("dependent not linked to parent")
	}
}

func TestCreateClientAdultWithParentIsIndependent(t *testing.T) {
	db := newTestDB(t)
	svc := newClientService(db)

	marie, err := svc.CreateClient(ctx(), &CreateClientInput{FirstName: "Marie", LastName: "Dupont"})
	if err != nil {
		t.Fatalf("create parent: %v", err)
	}

	birthDate := time.Now().AddDate(-17, 0, 0)
	teen, err := svc.CreateClient(ctx(), &CreateClientInput{
		FirstName: "Emma",
		LastName:  "Dupont",
		BirthDate: &birthDate,
		ParentID:  &marie.ID,
	})
	if err != nil {
		t.Fatalf("create teen: %v", err)
	}
	if !teen.Independent {
		t.Error("a client past the age threshold should be independent")
	}
}

func TestCreateClientRejectsDependentParent(t *testing.T) {
	db := newTestDB(t)
	svc := newClientService(db)

	marie, err := svc.CreateClient(ctx(), &CreateClientInput{FirstName: "Marie", LastName: "Dupont"})
	if err != nil {
		t.Fatalf("create parent: %v", err)
	}
	birthDate := time.Now().AddDate(-8, 0, 0)
	leo, err := svc.CreateClient(ctx(), &CreateClientInput{
		FirstName: "Léo",
		LastName:  "Dupont",
		BirthDate: &birthDate,
		ParentID:  &marie.ID,
	})
	if err != nil {
		t.Fatalf("create dependent: %v", err)
	}

	_, err = svc.CreateClient(ctx(), &CreateClientInput{
		FirstName: "Mia",
		LastName:  "Dupont",
		ParentID:  &leo.ID,
	})
	if err == nil {
		t.Fatal("expected error when the parent is itself a dependent")
	}
}

func TestDeleteClientWithDependents(t *testing.T) {
	db := newTestDB(t)
	svc := newClientService(db)

	marie, err := svc.CreateClient(ctx(), &CreateClientInput{FirstName: "Marie", LastName: "Dupont"})
	if err != nil {
		t.Fatalf("create parent: %v", err)
	}
	if _, err := svc.CreateClient(ctx(), &CreateClientInput{
		FirstName: "Léo",
		LastName:  "Dupont",
		ParentID:  &marie.ID,
	}); err != nil {
		t.Fatalf("create dependent: %v", err)
	}

	err = svc.DeleteClient(ctx(), marie.ID)
	if err == nil {
		t.Fatal("expected conflict deleting a parent with dependents")
	}
	if appErr := apperror.GetAppError(err); appErr.Code != 409 {
		t.Errorf("code = %d, want 409", appErr.Code)
	}
}

func TestUpdateClientSelfParent(t *testing.T) {
	db := newTestDB(t)
	svc := newClientService(db)

	marie, err := svc.CreateClient(ctx(), &CreateClientInput{FirstName: "Marie", LastName: "Dupont"})
	if err != nil {
		t.Fatalf("create client: %v", err)
	}

	_, err = svc.UpdateClient(ctx(), &UpdateClientInput{ID: marie.ID, ParentID: &marie.ID})
	if err == nil {
		t.Fatal("expected error for self-parenting")
	}
}

package usecase

import (
	"context"
	"errors"
	"testing"

	"adas_workorders/internal/adapter/persistence/repository"
	"adas_workorders/internal/domain/entities"
	mock_interfaces "adas_workorders/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func TestAssignmentResolver_Resolve(t *testing.T) {
	dir := repository.StaticDirectory{
		Shops: []entities.Shop{
			{Name: "Acme Body", Region: "North"},
			{Name: "Westside Collision Center", Region: "West"},
		},
		Technicians: []entities.Technician{
			{Name: "Idle Ian", Regions: "North", Active: false},
			{Name: "Rosa", Regions: "north, East", Active: true},
			{Name: "Wes", Regions: "West", Active: true},
		},
	}
	r := NewAssignmentResolver(dir, dir, "Dispatch", nil)

	cases := []struct {
		name     string
		shop     string
		assigned string
		want     string
	}{
		{"existing assignment kept", "Acme Body", "Marco", "Marco"},
		{"exact shop name", "acme body", "", "Rosa"},
		{"partial shop name", "Westside Collision", "", "Wes"},
		{"unknown shop", "Nowhere Auto", "", "Dispatch"},
		{"no shop", "", "", "Dispatch"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Resolve(context.Background(), tc.shop, tc.assigned); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestAssignmentResolver_LookupErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	shops := mock_interfaces.NewMockIShopDirectory(ctrl)
	techs := mock_interfaces.NewMockITechnicianDirectory(ctrl)
	r := NewAssignmentResolver(shops, techs, "Dispatch", nil)

	t.Run("shop table unavailable", func(t *testing.T) {
		shops.EXPECT().ListShops(gomock.Any()).Return(nil, errors.New("dynamo down"))
		if got := r.Resolve(context.Background(), "Acme Body", ""); got != "Dispatch" {
			t.Fatalf("expected default, got %q", got)
		}
	})

	t.Run("technician table unavailable", func(t *testing.T) {
		shops.EXPECT().ListShops(gomock.Any()).Return([]entities.Shop{{Name: "Acme Body", Region: "North"}}, nil)
		techs.EXPECT().ListTechnicians(gomock.Any()).Return(nil, errors.New("dynamo down"))
		if got := r.Resolve(context.Background(), "Acme Body", ""); got != "Dispatch" {
			t.Fatalf("expected default, got %q", got)
		}
	})
}

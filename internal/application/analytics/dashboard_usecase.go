// Package analytics contiene los casos de uso de los tableros por rol.
package analytics

import (
	"context"
	"fmt"

	"github.com/jhoicas/vendordocs-api/internal/application/documents"
	"github.com/jhoicas/vendordocs-api/internal/application/dto"
	"github.com/jhoicas/vendordocs-api/internal/application/presenter"
	"github.com/jhoicas/vendordocs-api/internal/domain/access"
	"github.com/jhoicas/vendordocs-api/internal/domain/entity"
	"github.com/jhoicas/vendordocs-api/internal/domain/repository"
)

const dashboardRecent = 5 // documentos recientes en cada tablero

// DashboardUseCase arma los resúmenes de cada rol. Se recalcula en cada llamada.
type DashboardUseCase struct {
	users repository.UserRepository
	docs  repository.DocumentRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(users repository.UserRepository, docs repository.DocumentRepository) *DashboardUseCase {
	return &DashboardUseCase{users: users, docs: docs}
}

type countResult struct {
	n   int
	err error
}

type statsResult struct {
	stats repository.DocumentStats
	err   error
}

type recentResult struct {
	docs []*entity.Document
	err  error
}

// Admin totales de proveedores, auditores y documentos más los 5 documentos más recientes.
//
// Cuatro consultas en paralelo:
//  1. CountByRole(vendor)
//  2. CountByRole(auditor)
//  3. Stats(todos)
//  4. List(todos, 5)
func (uc *DashboardUseCase) Admin(ctx context.Context, caller access.Subject) (*dto.AdminDashboardDTO, error) {
	if err := access.CanAccess(caller, access.ActionViewAdminDashboard, ""); err != nil {
		return nil, err
	}
	filter, err := documents.FilterFor(caller, dashboardRecent)
	if err != nil {
		return nil, err
	}

	vendorsCh := make(chan countResult, 1)
	auditorsCh := make(chan countResult, 1)
	statsCh := make(chan statsResult, 1)
	recentCh := make(chan recentResult, 1)

	go func() {
		n, err := uc.users.CountByRole(ctx, entity.RoleVendor)
		vendorsCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.users.CountByRole(ctx, entity.RoleAuditor)
		auditorsCh <- countResult{n, err}
	}()
	go uc.stats(ctx, filter, statsCh)
	go uc.recent(ctx, filter, recentCh)

	vendors := <-vendorsCh
	auditors := <-auditorsCh
	stats := <-statsCh
	recent := <-recentCh

	if vendors.err != nil {
		return nil, fmt.Errorf("dashboard: total proveedores: %w", vendors.err)
	}
	if auditors.err != nil {
		return nil, fmt.Errorf("dashboard: total auditores: %w", auditors.err)
	}
	if stats.err != nil {
		return nil, fmt.Errorf("dashboard: conteo de documentos: %w", stats.err)
	}
	if recent.err != nil {
		return nil, fmt.Errorf("dashboard: documentos recientes: %w", recent.err)
	}
	recentDTO, err := presenter.Documents(ctx, uc.users, recent.docs)
	if err != nil {
		return nil, err
	}
	return &dto.AdminDashboardDTO{
		TotalVendors:   vendors.n,
		TotalAuditors:  auditors.n,
		TotalDocuments: stats.stats.Total,
		RecentActivity: recentDTO,
	}, nil
}

// Auditor resumen sobre los proveedores asignados (todo en cero si no tiene).
// assignedVendors cuenta solo proveedores que existen.
func (uc *DashboardUseCase) Auditor(ctx context.Context, caller access.Subject) (*dto.AuditorDashboardDTO, error) {
	if err := access.CanAccess(caller, access.ActionViewAuditorDashboard, ""); err != nil {
		return nil, err
	}
	filter, err := documents.FilterFor(caller, dashboardRecent)
	if err != nil {
		return nil, err
	}

	vendorsCh := make(chan countResult, 1)
	statsCh := make(chan statsResult, 1)
	recentCh := make(chan recentResult, 1)

	go func() {
		list, err := uc.users.ListByIDs(ctx, caller.AssignedVendorIDs)
		vendorsCh <- countResult{len(list), err}
	}()
	go uc.stats(ctx, filter, statsCh)
	go uc.recent(ctx, filter, recentCh)

	vendors := <-vendorsCh
	stats := <-statsCh
	recent := <-recentCh

	if vendors.err != nil {
		return nil, fmt.Errorf("dashboard: proveedores asignados: %w", vendors.err)
	}
	if stats.err != nil {
		return nil, fmt.Errorf("dashboard: conteo de documentos: %w", stats.err)
	}
	if recent.err != nil {
		return nil, fmt.Errorf("dashboard: documentos recientes: %w", recent.err)
	}
	recentDTO, err := presenter.Documents(ctx, uc.users, recent.docs)
	if err != nil {
		return nil, err
	}
	return &dto.AuditorDashboardDTO{
		AssignedVendors: vendors.n,
		TotalDocuments:  stats.stats.Total,
		PendingReviews:  stats.stats.Pending,
		RecentDocuments: recentDTO,
	}, nil
}

// Vendor conteos por estado de los documentos propios.
func (uc *DashboardUseCase) Vendor(ctx context.Context, caller access.Subject) (*dto.VendorDashboardDTO, error) {
	if err := access.CanAccess(caller, access.ActionViewVendorDashboard, ""); err != nil {
		return nil, err
	}
	filter, err := documents.FilterFor(caller, dashboardRecent)
	if err != nil {
		return nil, err
	}

	statsCh := make(chan statsResult, 1)
	recentCh := make(chan recentResult, 1)
	go uc.stats(ctx, filter, statsCh)
	go uc.recent(ctx, filter, recentCh)

	stats := <-statsCh
	recent := <-recentCh

	if stats.err != nil {
		return nil, fmt.Errorf("dashboard: conteo de documentos: %w", stats.err)
	}
	if recent.err != nil {
		return nil, fmt.Errorf("dashboard: documentos recientes: %w", recent.err)
	}
	recentDTO, err := presenter.Documents(ctx, uc.users, recent.docs)
	if err != nil {
		return nil, err
	}
	return &dto.VendorDashboardDTO{
		TotalDocuments:  stats.stats.Total,
		PendingDocs:     stats.stats.Pending,
		ApprovedDocs:    stats.stats.Approved,
		RejectedDocs:    stats.stats.Rejected,
		RecentDocuments: recentDTO,
	}, nil
}

func (uc *DashboardUseCase) stats(ctx context.Context, filter repository.DocumentFilter, out chan<- statsResult) {
	filter.Limit = 0
	st, err := uc.docs.Stats(ctx, filter)
	out <- statsResult{st, err}
}

func (uc *DashboardUseCase) recent(ctx context.Context, filter repository.DocumentFilter, out chan<- recentResult) {
	docs, err := uc.docs.List(ctx, filter)
	out <- recentResult{docs, err}
}

package dto

// AdminDashboardDTO respuesta de GET /api/admin/dashboard.
type AdminDashboardDTO struct {
	TotalVendors   int                `json:"totalVendors"`
	TotalAuditors  int                `json:"totalAuditors"`
	TotalDocuments int                `json:"totalDocuments"`
	RecentActivity []DocumentResponse `json:"recentActivity"` // 5 más recientes
}

// AuditorDashboardDTO respuesta de GET /api/auditor/dashboard.
type AuditorDashboardDTO struct {
	AssignedVendors int                `json:"assignedVendors"`
	TotalDocuments  int                `json:"totalDocuments"`
	PendingReviews  int                `json:"pendingReviews"`
	RecentDocuments []DocumentResponse `json:"recentDocuments"`
}

// VendorDashboardDTO respuesta de GET /api/vendor/dashboard.
type VendorDashboardDTO struct {
	TotalDocuments  int                `json:"totalDocuments"`
	PendingDocs     int                `json:"pendingDocs"`
	ApprovedDocs    int                `json:"approvedDocs"`
	RejectedDocs    int                `json:"rejectedDocs"`
	RecentDocuments []DocumentResponse `json:"recentDocuments"`
}

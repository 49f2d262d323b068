package domain

var (
	MessageSuccessGetStatistics = "statistics retrieved successfully"
	MessageFailedGetStatistics  = "failed to retrieve statistics"
)

type (
	AdminStatistics struct {
		TotalUsers           int            `json:"total_users"`
		TotalDonors          int            `json:"total_donors"`
		TotalInstitutions    int            `json:"total_institutions"`
		VerifiedInstitutions int            `json:"verified_institutions"`
		TotalDonations       int            `json:"total_donations"`
		DonationsByStatus    map[string]int `json:"donations_by_status"`
		TotalRatings         int            `json:"total_ratings"`
		AverageRating        float64        `json:"average_rating"`
	}

	DonorStatistics struct {
		TotalDonations     int `json:"total_donations"`
		PendingDonations   int `json:"pending_donations"`
		ScheduledDonations int `json:"scheduled_donations"`
		DeliveredDonations int `json:"delivered_donations"`
		CancelledDonations int `json:"cancelled_donations"`
		TotalItemsDonated  int `json:"total_items_donated"`
	}

	InstitutionStatistics struct {
		ScheduledDeliveries int     `json:"scheduled_deliveries"`
		CompletedDeliveries int     `json:"completed_deliveries"`
		ItemsReceived       int     `json:"items_received"`
		Rating              float64 `json:"rating"`
		TotalRatings        int     `json:"total_ratings"`
	}
)

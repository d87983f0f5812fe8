package models

// Role is one of the three dashboard audiences.
type Role string

const (
	RoleOperator  Role = "operator"
	RoleAnalyst   Role = "analyst"
	RoleExecutive Role = "executive"
)

// View names a read-only computation a role may request.
type View string

const (
	ViewFilterOptions      View = "filter_options"
	ViewOperatorDashboard  View = "operator_dashboard"
	ViewProductRanking     View = "product_ranking"
	ViewForecast           View = "forecast"
	ViewAnalystDashboard   View = "analyst_dashboard"
	ViewMarketBasket       View = "market_basket"
	ViewExecutiveDashboard View = "executive_dashboard"
	ViewInsight            View = "insight"
	ViewReload             View = "reload"
)

var roleViews = map[Role][]View{
	RoleOperator: {
		ViewFilterOptions,
		ViewOperatorDashboard,
		ViewProductRanking,
		ViewForecast,
	},
	RoleAnalyst: {
		ViewFilterOptions,
		ViewAnalystDashboard,
		ViewMarketBasket,
	},
	RoleExecutive: {
		ViewFilterOptions,
		ViewExecutiveDashboard,
		ViewInsight,
		ViewReload,
	},
}

// Roles returns every known role.
func Roles() []Role {
	return []Role{RoleOperator, RoleAnalyst, RoleExecutive}
}

// Views returns the views granted to r, or nil for an unknown role.
func (r Role) Views() []View {
	views := roleViews[r]
	out := make([]View, len(views))
	copy(out, views)
	return out
}

// Can reports whether r may request v.
func (r Role) Can(v View) bool {
	for _, allowed := range roleViews[r] {
		if allowed == v {
			return true
		}
	}
	return false
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	_, ok := roleViews[r]
	return ok
}

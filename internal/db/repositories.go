package db

// Repositories groups every repository over one set of stores.
type Repositories struct {
	Research      *ResearchRepository
	IdeaEngine    *IdeaEngineRepository
	ExpectedValue *ExpectedValueRepository
	Earnings      *EarningsRepository
	People        *PeopleRepository
	Portfolio     *PortfolioRepository
	Risk          *RiskRepository
	TradingCost   *TradingCostRepository
	AltData       *AltDataRepository
	Stress        *StressRepository
	Dashboard     *DashboardRepository
}

// NewRepositories wires each repository to the store it reads from.
func NewRepositories(s *Stores) *Repositories {
	return &Repositories{
		Research:      NewResearchRepository(s.Holocene),
		IdeaEngine:    NewIdeaEngineRepository(s.Holocene),
		ExpectedValue: NewExpectedValueRepository(s.Holocene),
		Earnings:      NewEarningsRepository(s.Holocene),
		People:        NewPeopleRepository(s.Holocene),
		Portfolio:     NewPortfolioRepository(s.Holocene, s.MIK),
		Risk:          NewRiskRepository(s.Holocene, s.QR),
		TradingCost:   NewTradingCostRepository(s.QRReports),
		AltData:       NewAltDataRepository(s.AltData),
		Stress:        NewStressRepository(s.Holocene),
		Dashboard:     NewDashboardRepository(s.Holocene),
	}
}

// govdir/database/seed.go
package database

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"govdir/models"
	"govdir/utils"
)

// seedDirectory is the initial catalogue loaded into a fresh database.
var seedDirectory = []models.SiteInput{
	{Title: "National Portal of India", URL: "https://www.india.gov.in", Description: "Single-window gateway to all central and state government services, news, forms, tenders and directories.", Category: "General Services"},
	{Title: "MyGov", URL: "https://www.mygov.in", Description: "Citizen-engagement platform for discussions, tasks, polls and feedback on government initiatives.", Category: "Citizen Engagement"},
	{Title: "Prime Minister's Office", URL: "https://www.pmindia.gov.in", Description: "Official site of the Prime Minister's Office with announcements, speeches, policies and press releases.", Category: "Leadership"},
	{Title: "Ministry of Home Affairs", URL: "https://www.mha.gov.in", Description: "Internal security, border management, citizenship, disaster management and public grievances.", Category: "Security & Administration"},
	{Title: "Ministry of Finance", URL: "https://finmin.nic.in", Description: "Budget, tax policy, financial sector regulation, public debt and expenditure management.", Category: "Finance & Economics"},
	{Title: "Ministry of External Affairs", URL: "https://www.mea.gov.in", Description: "India's foreign policy, diplomatic missions, consular services and international treaties.", Category: "Foreign Affairs"},
	{Title: "Ministry of Defence", URL: "https://www.mod.gov.in", Description: "Defence policy, armed forces oversight, procurement and veterans' affairs.", Category: "Defence"},
	{Title: "Ministry of Railways", URL: "https://indianrailways.gov.in", Description: "Railway network operations, passenger services, freight management and online ticketing (IRCTC).", Category: "Transportation"},
	{Title: "Ministry of Health & Family Welfare", URL: "https://www.mohfw.gov.in", Description: "National health policy, family welfare programs, disease control and medical education.", Category: "Health & Welfare"},
	{Title: "Ministry of Education", URL: "https://www.education.gov.in", Description: "School education, higher education, scholarships, e-learning initiatives and teacher training.", Category: "Education"},
	{Title: "Ministry of Agriculture & Farmers Welfare", URL: "https://agricoop.nic.in", Description: "Agricultural policy, farmer schemes, commodity pricing, market intelligence and credit support.", Category: "Agriculture"},
	{Title: "Ministry of Electronics & Information Technology", URL: "https://www.meity.gov.in", Description: "Digital India programs, IT policy, cybersecurity, e-governance and emerging technologies.", Category: "Technology"},
	{Title: "Ministry of Environment, Forest & Climate Change", URL: "https://moef.gov.in", Description: "Environmental protection, climate action, wildlife conservation and environmental impact assessments.", Category: "Environment"},
	{Title: "Ministry of Labour & Employment", URL: "https://labour.gov.in", Description: "Labour laws, social security, skill development, employment services and worker welfare programs.", Category: "Employment"},
	{Title: "Ministry of Women & Child Development", URL: "https://wcd.nic.in", Description: "Women's empowerment, child welfare schemes, juvenile justice and protection policies.", Category: "Social Welfare"},
	{Title: "Ministry of Housing & Urban Affairs", URL: "https://mohua.gov.in", Description: "Urban planning, housing schemes (PMAY), smart cities mission and urban infrastructure development.", Category: "Urban Development"},
	{Title: "Ministry of Petroleum & Natural Gas", URL: "https://petroleum.nic.in", Description: "Hydrocarbon exploration, refining, distribution, subsidies and new energy transitions.", Category: "Energy"},
	{Title: "Ministry of New & Renewable Energy", URL: "https://mnre.gov.in", Description: "Solar, wind, bioenergy, policy incentives and renewable integration targets.", Category: "Energy"},
	{Title: "Open Government Data Platform", URL: "https://data.gov.in", Description: "Central repository of open datasets, APIs and data-driven apps published by government entities.", Category: "Data & Analytics"},
	{Title: "Integrated Government Online Directory", URL: "https://igod.gov.in", Description: "Browse all central ministries, departments, statutory bodies, PSUs and field offices by category.", Category: "General Services"},
}

// seedSites loads the initial catalogue when the sites table is empty.
// Timestamps are staggered a minute apart so newest-first ordering is
// stable from the first request.
func (s *DatabaseService) seedSites() error {
	var count int
	if err := s.DB.QueryRow(`SELECT COUNT(*) FROM sites`).Scan(&count); err != nil {
		return fmt.Errorf("counting sites: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := s.DB.Begin()
	if err != nil {
		return err
	}
	defer s.rollback(tx)

	base := utils.GetTime().Add(-time.Duration(len(seedDirectory)) * time.Minute)
	for i, in := range seedDirectory {
		ts := base.Add(time.Duration(i) * time.Minute).Format("2006-01-02 15:04:05")
		_, err := tx.Exec(
			`INSERT INTO sites (id, title, url, description, category, status, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			uuid.New().String(), in.Title, in.URL, in.Description, in.Category,
			models.SiteStatusActive, ts, ts,
		)
		if err != nil {
			return fmt.Errorf("seeding site %q: %w", in.Title, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	s.logger.Info("seeded directory", "sites", len(seedDirectory))
	return nil
}

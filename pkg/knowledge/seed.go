package knowledge

// SeedDocuments is the built-in content set used when no prebuilt index
// file is configured. It mirrors the public marketing pages and a handful
// of micro-snippets so the assistant can answer out of the box.
func SeedDocuments() []Document {
	return []Document{
		{
			ID:       "homepage",
			Content:  "We unify CRM, document management and automation across industries, helping teams launch in 1-3 weeks, cut admin time and scale faster. We offer solutions for property management, real-estate, contractors, accounting, cleaning and healthcare businesses.",
			Title:    "Homepage",
			URL:      "/",
			Type:     "page",
			Priority: "high",
			Tags:     []string{"homepage", "overview", "solutions"},
		},
		{
			ID:       "about-us",
			Content:  "We are a leading provider of business automation solutions. Our mission is to empower businesses to automate busywork and scale what matters. We are committed to innovation and customer success.",
			Title:    "About Us",
			URL:      "/about",
			Type:     "page",
			Priority: "medium",
			Tags:     []string{"about", "company", "mission"},
		},
		{
			ID:       "contact-us",
			Content:  "Contact us for sales inquiries, support or partnership opportunities. You can reach us via our contact form. Our team is available Monday to Friday, 9 AM to 5 PM EST.",
			Title:    "Contact Us",
			URL:      "/contact",
			Type:     "page",
			Priority: "medium",
			Tags:     []string{"contact", "support", "sales"},
		},
		{
			ID:       "industry-property-management",
			Content:  "Property management teams use our automation workflows to generate owner statements, route maintenance requests and keep tenants informed. Typical rollouts cut owner statement processing time by 75 percent.",
			Title:    "Property Management Industry Solutions",
			URL:      "/industries/property-management",
			Type:     "industry",
			Priority: "high",
			Tags:     []string{"industry", "property", "solutions"},
		},
		{
			ID:       "industry-healthcare",
			Content:  "Healthcare clinics digitize intake forms, scheduling and chart handling with our workflows, reducing administrative time by around 60 percent while staying compliant.",
			Title:    "Healthcare Industry Solutions",
			URL:      "/industries/healthcare",
			Type:     "industry",
			Priority: "high",
			Tags:     []string{"industry", "healthcare", "solutions"},
		},
		{
			ID:       "industry-contractors",
			Content:  "Contractors and builders produce quotes in 45 minutes instead of days using our templated quoting automation, winning jobs faster and keeping follow-ups on schedule.",
			Title:    "Contractors Industry Solutions",
			URL:      "/industries/contractors",
			Type:     "industry",
			Priority: "high",
			Tags:     []string{"industry", "contractor", "solutions"},
		},
		{
			ID:       "app-crm",
			Content:  "Our CRM application tracks leads, deals and customer communication in one place, with automation hooks for follow-up sequences and reporting.",
			Title:    "CRM Application",
			URL:      "/apps/crm",
			Type:     "app",
			Priority: "high",
			Tags:     []string{"app", "crm", "features"},
		},
		{
			ID:       "app-securevault-docs",
			Content:  "SecureVault Docs manages document intake, e-signatures and retention policies with full audit trails, built for teams that handle sensitive client paperwork.",
			Title:    "SecureVault Docs Application",
			URL:      "/apps/securevault-docs",
			Type:     "app",
			Priority: "high",
			Tags:     []string{"app", "documents", "features"},
		},
		{
			ID:       "automation-owner-statements",
			Content:  "Owner statement automation: we collect transactions, reconcile ledgers and deliver branded owner statements automatically every month.",
			Title:    "Owner Statement Automation",
			URL:      "/automations#owner-statements",
			Type:     "automation",
			Priority: "high",
			Tags:     []string{"automation", "workflow", "property"},
		},
		{
			ID:       "automation-lead-routing",
			Content:  "Lead routing automation: inbound leads are scored, assigned and followed up within minutes, so sales teams never lose a warm lead to slow handoffs.",
			Title:    "Lead Routing Automation",
			URL:      "/automations#lead-routing",
			Type:     "automation",
			Priority: "high",
			Tags:     []string{"automation", "workflow", "leads"},
		},
		{
			ID:       "snippet-launch-time",
			Content:  "Most teams launch their first automation workflow within 1 to 3 weeks of onboarding.",
			Title:    "Launch time",
			URL:      "/",
			Type:     "page",
			Priority: "high",
			Tags:     []string{"overview", "onboarding"},
			Snippet:  true,
		},
		{
			ID:       "snippet-industries",
			Content:  "We serve property management, real-estate, contractors, accounting, cleaning and healthcare businesses.",
			Title:    "Industries served",
			URL:      "/industries",
			Type:     "industry",
			Priority: "high",
			Tags:     []string{"industry", "overview"},
			Snippet:  true,
		},
	}
}

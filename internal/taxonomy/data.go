package taxonomy

// SampleTree returns a seed taxonomy covering the engine's documented
// scenarios. engine.New always uses this tree; there is no loader for an
// external taxonomy file.
func SampleTree() *Tree {
	return NewTree([]Domain{
		{
			ID:      "criminal_law",
			Display: "Criminal Law",
			Keywords: []string{
				"kidnapped", "kidnapping", "abduction", "ransom", "murder",
				"assault", "theft", "robbery", "fraud", "cheating", "drugs",
				"narcotic", "arrested", "arrest", "fir", "police",
			},
			NegativeKeywords: []string{"civil", "contract"},
			Patterns: []string{
				"hit and run",
			},
			PriorityRules: []PriorityRule{
				{
					Phrase:          "drugs at airport",
					DomainID:        "criminal_law",
					SubdomainID:     "criminal_law.drug_crime",
					ConfidenceFloor: 0.9,
				},
				{
					Phrase:          "workplace sexual harassment",
					DomainID:        "criminal_law",
					SubdomainID:     "criminal_law.sexual_harassment",
					ConfidenceFloor: 0.88,
				},
			},
			Subdomains: []Subdomain{
				{
					ID:      "criminal_law.kidnapping_abduction",
					Parent:  "criminal_law",
					Display: "Kidnapping & Abduction",
					Keywords: []string{
						"kidnapped", "kidnapping", "abduction", "ransom", "child",
					},
					Patterns: []string{"for ransom"},
				},
				{
					ID:      "criminal_law.drug_crime",
					Parent:  "criminal_law",
					Display: "Drug Crime",
					Keywords: []string{
						"drugs", "narcotic", "trafficking", "smuggling", "airport",
					},
					Patterns: []string{"drugs at airport"},
				},
				{
					ID:      "criminal_law.sexual_harassment",
					Parent:  "criminal_law",
					Display: "Sexual Harassment",
					Keywords: []string{
						"harassment", "workplace", "sexual", "modesty",
					},
					Patterns: []string{"workplace sexual harassment"},
				},
				{
					ID:       "criminal_law.fraud",
					Parent:   "criminal_law",
					Display:  "Fraud & Cheating",
					Keywords: []string{"fraud", "cheating", "deception", "scam"},
				},
				{
					ID:       "criminal_law.general",
					Parent:   "criminal_law",
					Display:  "General Criminal Matters",
					Keywords: []string{},
				},
			},
		},
		{
			ID:      "employment_law",
			Display: "Employment Law",
			Keywords: []string{
				"employer", "employee", "salary", "termination", "workplace",
				"wages", "leave", "resignation",
			},
			Subdomains: []Subdomain{
				{
					ID:       "employment_law.general",
					Parent:   "employment_law",
					Display:  "General Employment Matters",
					Keywords: []string{},
				},
			},
		},
		{
			ID:      "cyber_law",
			Display: "Cyber Law",
			Keywords: []string{
				"hacked", "hacking", "phishing", "cyber", "online", "password",
				"data breach", "malware",
			},
			Subdomains: []Subdomain{
				{
					ID:      "cyber_law.unauthorized_access",
					Parent:  "cyber_law",
					Display: "Unauthorized Access",
					Keywords: []string{
						"hacked", "hacking", "password", "account", "breach",
					},
				},
				{
					ID:       "cyber_law.general",
					Parent:   "cyber_law",
					Display:  "General Cyber Matters",
					Keywords: []string{},
				},
			},
		},
		{
			ID:      "other",
			Display: "Other / Unclassified",
			Keywords: []string{},
			Subdomains: []Subdomain{
				{
					ID:       "other.general",
					Parent:   "other",
					Display:  "General Inquiry",
					Keywords: []string{},
				},
			},
		},
	})
}

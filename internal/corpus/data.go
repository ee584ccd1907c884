package corpus

// SampleSections returns a seed section table sufficient to exercise the
// engine's documented end-to-end scenarios. It is the section table that
// engine.New loads under the "embedded" corpus driver, the only driver
// engine.New accepts.
func SampleSections() map[Code][]Section {
	return map[Code][]Section{
		CodeBNS: {
			{
				Number:           "137",
				Title:            "Kidnapping, abduction",
				Description:      "Kidnapping from India or from lawful guardianship.",
				Keywords:         []string{"kidnapping", "abduction", "child", "ransom"},
				LinkedDomains:    []string{"criminal_law"},
				LinkedSubdomains: []string{"criminal_law.kidnapping_abduction"},
			},
			{
				Number:           "140",
				Title:            "Kidnapping or abducting in order to murder",
				Description:      "Kidnapping or abducting with intent to murder or dispose of victim.",
				Keywords:         []string{"kidnapping", "abduction", "murder", "ransom"},
				LinkedDomains:    []string{"criminal_law"},
				LinkedSubdomains: []string{"criminal_law.kidnapping_abduction"},
			},
			{
				Number:           "140A",
				Title:            "Kidnapping for ransom",
				Description:      "Kidnapping a person and threatening to cause death or hurt in order to extort ransom.",
				Keywords:         []string{"kidnapping", "ransom", "extortion", "child"},
				LinkedDomains:    []string{"criminal_law"},
				LinkedSubdomains: []string{"criminal_law.kidnapping_abduction"},
			},
			{
				Number:           "87",
				Title:            "Punishment for drug trafficking",
				Description:      "Possession, transport, or sale of narcotic or psychotropic substances.",
				Keywords:         []string{"drugs", "narcotic", "trafficking", "smuggling"},
				LinkedDomains:    []string{"criminal_law"},
				LinkedSubdomains: []string{"criminal_law.drug_crime"},
			},
			{
				Number:           "74",
				Title:            "Assault or criminal force with intent to outrage modesty",
				Description:      "Assault or use of criminal force on a person, intending to outrage modesty.",
				Keywords:         []string{"harassment", "assault", "modesty", "workplace"},
				LinkedDomains:    []string{"criminal_law"},
				LinkedSubdomains: []string{"criminal_law.sexual_harassment"},
			},
			{
				Number:           "318",
				Title:            "Cheating",
				Description:      "Deceiving a person to deliver property or do an act they would not otherwise do.",
				Keywords:         []string{"cheating", "fraud", "deception"},
				LinkedDomains:    []string{"criminal_law"},
				LinkedSubdomains: []string{"criminal_law.fraud"},
			},
		},
		CodeIPC: {
			{
				Number:           "363",
				Title:            "Punishment for kidnapping",
				Description:      "Whoever kidnaps any person from India or from lawful guardianship.",
				Keywords:         []string{"kidnapping", "abduction", "guardianship"},
				LinkedDomains:    []string{"criminal_law"},
				LinkedSubdomains: []string{"criminal_law.kidnapping_abduction"},
			},
			{
				Number:           "364A",
				Title:            "Kidnapping for ransom",
				Description:      "Kidnapping a person and threatening to cause death or hurt, or causing hurt, in order to extort ransom.",
				Keywords:         []string{"kidnapping", "ransom", "child", "extortion"},
				LinkedDomains:    []string{"criminal_law"},
				LinkedSubdomains: []string{"criminal_law.kidnapping_abduction"},
			},
			{
				Number:           "354A",
				Title:            "Sexual harassment",
				Description:      "Sexual harassment and punishment for sexual harassment.",
				Keywords:         []string{"harassment", "workplace", "sexual"},
				LinkedDomains:    []string{"criminal_law"},
				LinkedSubdomains: []string{"criminal_law.sexual_harassment"},
			},
			{
				Number:           "420",
				Title:            "Cheating and dishonestly inducing delivery of property",
				Description:      "Whoever cheats and thereby dishonestly induces delivery of property.",
				Keywords:         []string{"cheating", "fraud"},
				LinkedDomains:    []string{"criminal_law"},
				LinkedSubdomains: []string{"criminal_law.fraud"},
			},
		},
		CodeCrPC: {
			{
				Number:           "154",
				Title:            "Information in cognizable cases",
				Description:      "Recording of first information report by officer in charge of a police station.",
				Keywords:         []string{"fir", "complaint", "cognizable", "kidnapping", "report"},
				LinkedDomains:    []string{"criminal_law"},
				LinkedSubdomains: []string{"criminal_law.kidnapping_abduction", "criminal_law.general"},
			},
			{
				Number:           "41",
				Title:            "When police may arrest without warrant",
				Description:      "Circumstances under which a police officer may arrest without an order from a magistrate and without a warrant.",
				Keywords:         []string{"arrest", "warrant", "drugs", "airport"},
				LinkedDomains:    []string{"criminal_law"},
				LinkedSubdomains: []string{"criminal_law.drug_crime", "criminal_law.general"},
			},
			{
				Number:           "41A",
				Title:            "Notice of appearance before police officer",
				Description:      "Notice to a person against whom a reasonable complaint has been made.",
				Keywords:         []string{"notice", "appearance"},
				LinkedDomains:    []string{"criminal_law"},
				LinkedSubdomains: []string{"criminal_law.general"},
			},
			{
				Number:           "41B",
				Title:            "Procedure of arrest and duties of officer",
				Description:      "Procedure to be followed while making an arrest.",
				Keywords:         []string{"arrest", "procedure"},
				LinkedDomains:    []string{"criminal_law"},
				LinkedSubdomains: []string{"criminal_law.general"},
			},
			{
				Number:           "100",
				Title:            "Persons in charge of closed place to allow search",
				Description:      "Duty to allow search of a closed place when a search warrant is executed.",
				Keywords:         []string{"search", "warrant"},
				LinkedDomains:    []string{"criminal_law"},
				LinkedSubdomains: []string{"criminal_law.general"},
			},
			{
				Number:           "100A",
				Title:            "Search to be conducted in presence of witnesses",
				Description:      "Requirement for witnesses to be present during a search.",
				Keywords:         []string{"search", "witnesses"},
				LinkedDomains:    []string{"criminal_law"},
				LinkedSubdomains: []string{"criminal_law.general"},
			},
			{
				Number:           "7",
				Title:            "Territorial divisions",
				Description:      "Division of states into sessions divisions and districts for this Code.",
				Keywords:         []string{"territorial", "divisions", "jurisdiction"},
				LinkedDomains:    []string{"criminal_law"},
				LinkedSubdomains: []string{"criminal_law.general"},
			},
		},
	}
}

// SampleArticles returns a seed constitutional article table.
func SampleArticles() []Article {
	return []Article{
		{
			Number:                "21",
			Title:                 "Protection of life and personal liberty",
			Summary:               "No person shall be deprived of his life or personal liberty except according to procedure established by law.",
			Content:               "Protection of life and personal liberty against kidnapped or abducted victims, unlawful detention, and arbitrary arrest. Covers a child kidnapped for ransom.",
			FundamentalRightsFlag: true,
			DomainHints:           []string{"criminal_law"},
			Keywords:              []string{"life", "liberty", "kidnapped", "kidnapping", "abducted", "arrest", "detention", "ransom", "child"},
		},
		{
			Number:                "22",
			Title:                 "Protection against arrest and detention",
			Summary:               "Rights of a person who is arrested, including the right to be informed of grounds of arrest.",
			Content:               "No person who is arrested shall be detained without being informed of the grounds for such arrest.",
			FundamentalRightsFlag: true,
			DomainHints:           []string{"criminal_law"},
			Keywords:              []string{"arrest", "detention", "rights"},
		},
		{
			Number:                "19",
			Title:                 "Protection of certain rights regarding freedom of speech",
			Summary:               "Freedom of speech, assembly, association, movement, residence, and profession.",
			Content:               "All citizens have the right to freedom of speech and expression, subject to reasonable restrictions.",
			FundamentalRightsFlag: true,
			DomainHints:           []string{"civil_rights"},
			Keywords:              []string{"speech", "expression", "assembly"},
		},
		{
			Number:                "14",
			Title:                 "Equality before law",
			Summary:               "The State shall not deny to any person equality before the law.",
			Content:               "Equality before the law and equal protection of the laws within the territory of India.",
			FundamentalRightsFlag: true,
			DomainHints:           []string{"civil_rights", "employment_law"},
			Keywords:              []string{"equality", "discrimination"},
		},
	}
}

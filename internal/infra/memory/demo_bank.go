package memory

import "quiz-runner/internal/domain"

// DemoBank returns a small built-in bank so the server can run without a
// database; swap the loader for the Postgres one in production.
func DemoBank() *domain.Bank {
	d1, d2 := 1, 2
	return &domain.Bank{
		Meta: domain.BankMeta{Title: "Demo Bank"},
		Questions: []domain.Question{
			{
				ID:         "demo-001",
				Source:     "Networking",
				Difficulty: &d2,
				Tags:       []string{"units"},
				Type:       domain.TypeSingle,
				Stem:       "What does BPS usually stand for?",
				Options:    []string{"Bytes Per Second", "Bits Per Second", "Base Packet System", "Binary Protocol Service"},
				Answer:     []int{1},
				Explain: &domain.Explain{
					Why: "BPS normally means bits per second, the unit used for link speed.",
					Options: []string{
						"That would be B/s",
						"Correct",
						"Not a standard term",
						"Not a standard term",
					},
				},
			},
			{
				ID:         "demo-002",
				Source:     "Networking",
				Difficulty: &d1,
				Type:       domain.TypeSingle,
				Stem:       "Which protocol resolves host names to IP addresses?",
				Options:    []string{"DHCP", "DNS", "ARP", "NAT"},
				Answer:     []int{1},
				Explain: &domain.Explain{
					Why: "DNS maps names to addresses; DHCP hands out leases, ARP maps IP to MAC.",
				},
			},
			{
				ID:         "demo-003",
				Difficulty: &d2,
				Tags:       []string{"transport"},
				Type:       domain.TypeMulti,
				Stem:       "Which of the following are transport layer protocols?",
				Options:    []string{"TCP", "IP", "UDP", "HTTP"},
				Answer:     []int{0, 2},
				Explain: &domain.Explain{
					Why: "TCP and UDP sit at the transport layer; IP is network, HTTP is application.",
				},
			},
		},
	}
}

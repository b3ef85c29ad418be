package repository

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"agriconnect/domain"
)

//go:embed seed/profiles.yaml
var defaultSeed []byte

type seedProfile struct {
	ID               string                  `yaml:"id"`
	Name             string                  `yaml:"name"`
	Location         string                  `yaml:"location"`
	AvatarURL        string                  `yaml:"avatar_url"`
	MemberSince      int                     `yaml:"member_since"`
	TrustScore       int                     `yaml:"trust_score"`
	RepaymentHistory domain.RepaymentHistory `yaml:"repayment_history"`
	Bio              string                  `yaml:"bio"`
	Connections      []domain.Loan           `yaml:"connections"`
}

func (s seedProfile) profile() domain.Profile {
	return domain.Profile{
		ID:               s.ID,
		Name:             s.Name,
		Location:         s.Location,
		AvatarURL:        s.AvatarURL,
		MemberSince:      s.MemberSince,
		TrustScore:       s.TrustScore,
		RepaymentHistory: s.RepaymentHistory,
		Bio:              s.Bio,
		Connections:      s.Connections,
	}
}

type seedFarmer struct {
	seedProfile          `yaml:",inline"`
	Crops                []string `yaml:"crops"`
	SeasonsFarmed        int      `yaml:"seasons_farmed"`
	AvgYieldKgPerHectare float64  `yaml:"avg_yield_kg_per_hectare"`
}

type seedLivestock struct {
	Type         string `yaml:"type"`
	Count        int    `yaml:"count"`
	HealthStatus string `yaml:"health_status"`
	LastVetVisit string `yaml:"last_vet_visit"`
}

type seedHerder struct {
	seedProfile        `yaml:",inline"`
	Livestock          []seedLivestock `yaml:"livestock"`
	HerdSize           int             `yaml:"herd_size"`
	SeasonsHerded      int             `yaml:"seasons_herded"`
	AvgIncomePerSeason float64         `yaml:"avg_income_per_season"`
	IsNomadic          bool            `yaml:"is_nomadic"`
	CommunityRole      string          `yaml:"community_role"`
	PreferredMarkets   []string        `yaml:"preferred_markets"`
}

type seedFile struct {
	Farmers []seedFarmer `yaml:"farmers"`
	Herders []seedHerder `yaml:"herders"`
}

// DefaultProfiles decodes the profile set embedded in the binary.
func DefaultProfiles() ([]domain.Borrower, error) {
	return DecodeProfiles(bytes.NewReader(defaultSeed))
}

// LoadProfiles decodes a profile file with the same layout as the embedded seed.
func LoadProfiles(path string) ([]domain.Borrower, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open profiles: %w", err)
	}
	defer f.Close()
	return DecodeProfiles(f)
}

// DecodeProfiles reads farmers first, then herders, preserving file order.
func DecodeProfiles(r io.Reader) ([]domain.Borrower, error) {
	var file seedFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("decode profiles: %w", err)
	}

	out := make([]domain.Borrower, 0, len(file.Farmers)+len(file.Herders))
	for _, f := range file.Farmers {
		out = append(out, domain.Farmer{
			Profile:              f.profile(),
			Crops:                f.Crops,
			SeasonsFarmed:        f.SeasonsFarmed,
			AvgYieldKgPerHectare: f.AvgYieldKgPerHectare,
		})
	}
	for _, h := range file.Herders {
		livestock := make([]domain.Livestock, 0, len(h.Livestock))
		for _, l := range h.Livestock {
			livestock = append(livestock, domain.Livestock{
				Type:         domain.LivestockType(l.Type),
				Count:        l.Count,
				HealthStatus: l.HealthStatus,
				LastVetVisit: l.LastVetVisit,
			})
		}
		out = append(out, domain.Herder{
			Profile:            h.profile(),
			Livestock:          livestock,
			HerdSize:           h.HerdSize,
			SeasonsHerded:      h.SeasonsHerded,
			AvgIncomePerSeason: h.AvgIncomePerSeason,
			IsNomadic:          h.IsNomadic,
			CommunityRole:      domain.CommunityRole(h.CommunityRole),
			PreferredMarkets:   h.PreferredMarkets,
		})
	}

	for _, b := range out {
		if err := validateProfile(b.Details()); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func validateProfile(p domain.Profile) error {
	if p.ID == "" {
		return fmt.Errorf("profile %q: missing id", p.Name)
	}
	if p.Location == "" {
		return fmt.Errorf("profile %s: missing location", p.ID)
	}
	if p.TrustScore < 0 || p.TrustScore > 100 {
		return fmt.Errorf("profile %s: trust score %d out of range", p.ID, p.TrustScore)
	}
	if !p.RepaymentHistory.Valid() {
		return fmt.Errorf("profile %s: inconsistent repayment history", p.ID)
	}
	return nil
}

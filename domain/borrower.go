package domain

import (
	"fmt"
	"strings"
)

type BorrowerKind string

const (
	KindFarmer BorrowerKind = "farmer"
	KindHerder BorrowerKind = "herder"
)

// Borrower is the capability shared by farmers and herders. The repayment plan
// workflow only talks to this interface.
type Borrower interface {
	Details() Profile
	Kind() BorrowerKind
	AssetSummary() string
	AssetKeywords() []string
	IncomeContext() string
}

type Profile struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	Location         string           `json:"location"`
	AvatarURL        string           `json:"avatarUrl"`
	MemberSince      int              `json:"memberSince"`
	TrustScore       int              `json:"trustScore"`
	RepaymentHistory RepaymentHistory `json:"repaymentHistory"`
	Bio              string           `json:"bio"`
	Connections      []Loan           `json:"connections,omitempty"`
}

func (p Profile) Details() Profile {
	return p
}

type Farmer struct {
	Profile
	Crops                []string `json:"crops"`
	SeasonsFarmed        int      `json:"seasonsFarmed"`
	AvgYieldKgPerHectare float64  `json:"avgYieldKgPerHectare"`
}

var _ Borrower = Farmer{}

func (f Farmer) Kind() BorrowerKind {
	return KindFarmer
}

func (f Farmer) AssetSummary() string {
	if len(f.Crops) == 0 {
		return "no recorded crops"
	}
	return strings.Join(f.Crops, ", ")
}

func (f Farmer) AssetKeywords() []string {
	return f.Crops
}

func (f Farmer) IncomeContext() string {
	return fmt.Sprintf("%d seasons farmed, average yield %.0f kg/ha", f.SeasonsFarmed, f.AvgYieldKgPerHectare)
}

type LivestockType string

const (
	LivestockCattle  LivestockType = "cattle"
	LivestockGoats   LivestockType = "goats"
	LivestockSheep   LivestockType = "sheep"
	LivestockCamels  LivestockType = "camels"
	LivestockDonkeys LivestockType = "donkeys"
)

type Livestock struct {
	Type         LivestockType `json:"type"`
	Count        int           `json:"count"`
	HealthStatus string        `json:"healthStatus"`
	LastVetVisit string        `json:"lastVetVisit,omitempty"`
}

type CommunityRole string

const (
	RoleElder       CommunityRole = "elder"
	RoleYouth       CommunityRole = "youth"
	RoleWomenLeader CommunityRole = "women_leader"
	RoleMember      CommunityRole = "member"
)

type Herder struct {
	Profile
	Livestock          []Livestock   `json:"livestock"`
	HerdSize           int           `json:"herdSize"`
	SeasonsHerded      int           `json:"seasonsHerded"`
	AvgIncomePerSeason float64       `json:"avgIncomePerSeason"`
	IsNomadic          bool          `json:"isNomadic"`
	CommunityRole      CommunityRole `json:"communityRole"`
	PreferredMarkets   []string      `json:"preferredMarkets"`
}

var _ Borrower = Herder{}

func (h Herder) Kind() BorrowerKind {
	return KindHerder
}

// AssetSummary lists the herd composition, e.g. "40 cattle, 25 goats".
func (h Herder) AssetSummary() string {
	if len(h.Livestock) == 0 {
		return "no recorded livestock"
	}
	parts := make([]string, 0, len(h.Livestock))
	for _, l := range h.Livestock {
		parts = append(parts, fmt.Sprintf("%d %s", l.Count, l.Type))
	}
	return strings.Join(parts, ", ")
}

func (h Herder) AssetKeywords() []string {
	keywords := make([]string, 0, len(h.Livestock))
	for _, l := range h.Livestock {
		keywords = append(keywords, string(l.Type))
	}
	return keywords
}

func (h Herder) IncomeContext() string {
	mobility := "settled"
	if h.IsNomadic {
		mobility = "nomadic"
	}
	role := strings.ReplaceAll(string(h.CommunityRole), "_", " ")
	if role == "" {
		role = string(RoleMember)
	}
	ctx := fmt.Sprintf("%s herder, community role: %s, average income KSh %.0f per season",
		mobility, role, h.AvgIncomePerSeason)
	if len(h.PreferredMarkets) > 0 {
		ctx += ", sells at " + strings.Join(h.PreferredMarkets, ", ")
	}
	return ctx
}

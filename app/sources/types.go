package sources

// Rating is a curated reputation entry for a news domain. Score is on a
// 0-100 scale, Bias is one of Left / Center / Right, Category describes
// the kind of outlet (news, opinion, tabloid, satire, conspiracy).
type Rating struct {
	Domain   string `yaml:"domain"`
	Score    int    `yaml:"score"`
	Bias     string `yaml:"bias"`
	Category string `yaml:"category"`
}

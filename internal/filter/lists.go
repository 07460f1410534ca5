package filter

// Stock term lists, hand-curated for the board's Korean audience. The exact
// list is matched token-by-token; the compact list is shorter and denser
// because it is substring-matched against normalized text.

var defaultExact = []string{
	"시발",
	"씨발",
	"병신",
	"개새끼",
	"새끼",
	"좆",
	"지랄",
	"꺼져",
	"섹스",
	"야동",
	"포르노",
	"성인",
	"노출",
	"19금",
	"av",
	"도박",
	"카지노",
	"바카라",
	"토토",
	"베팅",
	"슬롯",
}

var defaultCompact = []string{
	"ㅅㅂ",
	"ㅆㅂ",
	"ㅂㅅ",
	"ㅈㄹ",
	"ㅈㄴ",
	"ㅅㅅ",
	"시발",
	"씨발",
	"병신",
	"좆",
	"지랄",
	"섹스",
	"야동",
	"포르노",
	"도박",
	"카지노",
	"바카라",
	"토토",
	"베팅",
	"슬롯",
}

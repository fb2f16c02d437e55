package service

// DemoPlayers is what an empty roster starts with when seeding is enabled.
var DemoPlayers = []CreatePlayerRequest{
	{Name: "大谷翔平", Team: "洛杉磯天使", Position: "投手 / 指定打擊", BattingAvg: 0.304, Bio: "二刀流球星。"},
	{Name: "鈴木一朗", Team: "西雅圖水手", Position: "外野手", BattingAvg: 0.311, Bio: "安打製造機，速度出眾。"},
	{Name: "亞倫·賈吉", Team: "紐約洋基", Position: "外野手", BattingAvg: 0.283, Bio: "強打者，領袖氣質。"},
}

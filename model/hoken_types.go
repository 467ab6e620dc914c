package model

// Hokens は医療保険と公費(最大4)です。RyouyouNoKyuufu と添字で対応します。
type Hokens struct {
	IryouHoken       *IryouHoken       `json:"iryou_hoken"`
	KouhiFutanIryous []KouhiFutanIryou `json:"kouhi_futan_iryous"`
	Main             string            `json:"main"`
}

type IryouHoken struct {
	HokenjaBangou  string  `json:"hokenja_bangou"`
	Kigou          *string `json:"kigou"`
	Bangou         string  `json:"bangou"`
	Edaban         *string `json:"edaban"`
	KyuufuWariai   *int    `json:"kyuufu_wariai"`
	TeishotokuType *string `json:"teishotoku_type"`
}

type KouhiFutanIryou struct {
	FutanshaBangou  string `json:"futansha_bangou"`
	JukyuushaBangou string `json:"jukyuusha_bangou"`
}

// RyouyouNoKyuufu は療養の給付です。
type RyouyouNoKyuufu struct {
	IryouHoken       *RyouyouKyuufu  `json:"iryou_hoken"`
	KouhiFutanIryous []RyouyouKyuufu `json:"kouhi_futan_iryous"`
}

// RyouyouKyuufu は保険1件分の請求・給付値です。null の項目は nil のまま保持します。
type RyouyouKyuufu struct {
	GoukeiTensuu                           *int `json:"goukei_tensuu"`
	ShinryouJitsunissuu                    *int `json:"shinryou_jitsunissuu"`
	IchibuFutankin                         *int `json:"ichibu_futankin"`
	KyuufuTaishouIchibuFutankin            *int `json:"kyuufu_taishou_ichibu_futankin"`
	ShokujiSeikatsuRyouyouKaisuu           *int `json:"shokuji_seikatsu_ryouyou_kaisuu"`
	ShokujiSeikatsuRyouyouGoukeiKingaku    *int `json:"shokuji_seikatsu_ryouyou_goukei_kingaku"`
	ShokujiSeikatsuRyouyouHyoujunFutangaku int  `json:"shokuji_seikatsu_ryouyou_hyoujun_futangaku"`
}

// Package advice serves pre-authored guidance for a small set of curated
// scenarios. Matching is keyword co-occurrence: a rule fires when the query
// contains at least one keyword from every group.
package advice

import "strings"

// Document is a structured advice payload for one scenario.
type Document struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Summary string   `json:"summary"`
	Steps   []string `json:"steps"`
}

// Rule maps keyword co-occurrence groups to a scenario document.
type Rule struct {
	ID     string
	Groups [][]string
}

func (r Rule) matches(query string) bool {
	for _, group := range r.Groups {
		hit := false
		for _, kw := range group {
			if strings.Contains(query, kw) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}
	return true
}

// Library holds the scenario rules in evaluation order.
type Library struct {
	rules []Rule
	docs  map[string]*Document
}

// Default returns the built-in scenario library.
func Default() *Library {
	return &Library{rules: defaultRules(), docs: defaultDocuments()}
}

// Match returns the advice document for the first rule the query satisfies.
func (l *Library) Match(query string) (*Document, bool) {
	lower := strings.ToLower(query)
	for _, r := range l.rules {
		if r.matches(lower) {
			if doc, ok := l.docs[r.ID]; ok {
				return doc, true
			}
		}
	}
	return nil, false
}

func defaultRules() []Rule {
	return []Rule{
		{
			ID: "depression_doctor",
			Groups: [][]string{
				{"憂鬱", "情緒低落", "心情低落"},
				{"看醫生", "就醫", "看診", "掛號", "身心科", "精神科"},
			},
		},
		{
			ID: "dementia_family",
			Groups: [][]string{
				{"失智", "記憶力", "健忘"},
				{"爸爸", "媽媽", "長輩", "父母", "家人", "爺爺", "奶奶", "阿公", "阿嬤"},
			},
		},
		{
			ID: "child_screen_time",
			Groups: [][]string{
				{"小孩", "孩子", "兒子", "女兒"},
				{"手機", "3c", "平板", "電玩", "遊戲", "螢幕"},
			},
		},
		{
			ID: "inlaw_childcare",
			Groups: [][]string{
				{"婆婆", "婆媳", "公婆"},
				{"帶小孩", "帶孩子", "育兒", "教養", "顧小孩"},
			},
		},
	}
}

func defaultDocuments() map[string]*Document {
	return map[string]*Document{
		"depression_doctor": {
			ID:      "depression_doctor",
			Title:   "考慮就醫是照顧自己的開始",
			Summary: "持續兩週以上的情緒低落、失去興趣或睡眠食慾改變，值得找專業人員聊聊。",
			Steps: []string{
				"先掛身心科或心理諮商門診，初診會以談話評估為主。",
				"就醫前可以簡單記下情緒變化的時間和情境，幫助醫師了解你。",
				"若暫時不想就醫，可先撥打1925安心專線，24小時都有人接聽。",
			},
		},
		"dementia_family": {
			ID:      "dementia_family",
			Title:   "擔心長輩記憶力退化",
			Summary: "偶爾忘東忘西和失智不同，持續惡化、影響生活時建議及早評估。",
			Steps: []string{
				"觀察是否重複問同樣的問題、迷路或忘記熟悉的人名。",
				"陪同長輩到神經內科或記憶門診做認知評估。",
				"可聯繫失智症關懷專線0800-474-580了解照顧資源。",
			},
		},
		"child_screen_time": {
			ID:      "child_screen_time",
			Title:   "孩子離不開螢幕",
			Summary: "與其直接沒收，不如和孩子一起訂出雙方都能接受的使用規則。",
			Steps: []string{
				"和孩子共同約定每天的使用時段和時長，寫下來貼在明顯處。",
				"安排替代活動，運動或桌遊，讓放下螢幕不等於無事可做。",
				"大人以身作則，用餐和睡前全家一起收起手機。",
			},
		},
		"inlaw_childcare": {
			ID:      "inlaw_childcare",
			Title:   "和公婆的教養想法不一樣",
			Summary: "兩代教養衝突很常見，重點是讓長輩感覺被尊重，同時守住關鍵原則。",
			Steps: []string{
				"先感謝長輩幫忙，再用「醫生建議」等第三方說法溝通原則。",
				"挑一兩件最重要的事堅持，其他彈性放手，減少衝突頻率。",
				"由另一半出面與自己的父母溝通，效果通常比較好。",
			},
		},
	}
}

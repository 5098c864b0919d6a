package respond

// FilterRuleRespond 下发给客户端的单条过滤规则
type FilterRuleRespond struct {
	Pattern         string `json:"pattern"`
	Replacement     string `json:"replacement"`
	CaseInsensitive bool   `json:"caseInsensitive"`
}

// FilterRulesRespond 客户端过滤规则全量下发
// version 用于客户端检测规则是否过期
type FilterRulesRespond struct {
	Version int64               `json:"version"`
	Rules   []FilterRuleRespond `json:"rules"`
}

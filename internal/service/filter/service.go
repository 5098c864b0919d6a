// Package filter 实现敏感词过滤服务
// 规则以不可变快照的形式挂在原子指针后面：Censor 读快照无锁，
// Reload 整体编译新快照后一次性换入，热加载不阻塞任何读方
package filter

import (
	"regexp"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"mall_social_server/internal/dao/mysql/repository"
	"mall_social_server/internal/dto/respond"
	"mall_social_server/pkg/errorx"
)

// rule 单条已编译规则
type rule struct {
	pattern     *regexp.Regexp
	word        string
	replacement string
}

// snapshot 不可变规则快照
// version 取重载时刻的 Unix 毫秒，客户端用它判断本地规则是否过期
type snapshot struct {
	version int64
	rules   []rule
}

// filterService 敏感词过滤实现
type filterService struct {
	repos   *repository.Repositories
	current atomic.Pointer[snapshot]
}

// NewFilterService 构造函数，初始为空快照
func NewFilterService(repos *repository.Repositories) *filterService {
	s := &filterService{repos: repos}
	s.current.Store(&snapshot{})
	return s
}

// Reload 从存储加载全部启用规则并原子换入新快照
// 编译失败的规则跳过并告警，不影响其余规则生效
func (f *filterService) Reload() (int64, error) {
	records, err := f.repos.CensorRule.FindActive()
	if err != nil {
		zap.L().Error("load censor rules error", zap.Error(err))
		return 0, errorx.ErrServerBusy
	}

	rules := make([]rule, 0, len(records))
	for _, record := range records {
		word := strings.TrimSpace(record.Word)
		if word == "" {
			continue
		}
		// 字面量整词匹配，大小写不敏感
		pattern, err := regexp.Compile("(?i)" + regexp.QuoteMeta(word))
		if err != nil {
			zap.L().Warn("compile censor rule error",
				zap.String("word", record.Word), zap.Error(err))
			continue
		}
		rules = append(rules, rule{
			pattern:     pattern,
			word:        word,
			replacement: record.Replacement,
		})
	}

	next := &snapshot{
		version: time.Now().UnixMilli(),
		rules:   rules,
	}
	f.current.Store(next)
	zap.L().Info("censor rules reloaded",
		zap.Int64("version", next.version), zap.Int("count", len(rules)))
	return next.version, nil
}

// Censor 用当前快照按加载顺序执行全部替换
// 对给定快照是纯函数，重载期间各读方各自持有一致的旧快照
func (f *filterService) Censor(text string) string {
	snap := f.current.Load()
	for i := range snap.rules {
		text = snap.rules[i].pattern.ReplaceAllString(text, snap.rules[i].replacement)
	}
	return text
}

// Version 返回当前快照版本，未加载过为 0
func (f *filterService) Version() int64 {
	return f.current.Load().version
}

// GetClientRules 导出当前快照，供远端渲染器本地执行等价遮蔽
func (f *filterService) GetClientRules() *respond.FilterRulesRespond {
	snap := f.current.Load()
	rules := make([]respond.FilterRuleRespond, 0, len(snap.rules))
	for i := range snap.rules {
		rules = append(rules, respond.FilterRuleRespond{
			Pattern:         snap.rules[i].word,
			Replacement:     snap.rules[i].replacement,
			CaseInsensitive: true,
		})
	}
	return &respond.FilterRulesRespond{
		Version: snap.version,
		Rules:   rules,
	}
}

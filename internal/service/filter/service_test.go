package filter

import (
	"testing"
	"time"

	"mall_social_server/internal/dao/mysql/repository"
	"mall_social_server/internal/model"
)

// fakeCensorRuleRepo 内存规则表
type fakeCensorRuleRepo struct {
	rules []model.CensorRule
}

func (f *fakeCensorRuleRepo) FindActive() ([]model.CensorRule, error) {
	out := make([]model.CensorRule, 0, len(f.rules))
	for _, rule := range f.rules {
		if rule.Active {
			out = append(out, rule)
		}
	}
	return out, nil
}

func newTestService(rules ...model.CensorRule) (*filterService, *fakeCensorRuleRepo) {
	repo := &fakeCensorRuleRepo{rules: rules}
	repos := repository.NewTestRepositories(func(r *repository.Repositories) {
		r.CensorRule = repo
	})
	return NewFilterService(repos), repo
}

func TestCensorBeforeReloadIsPassthrough(t *testing.T) {
	svc, _ := newTestService(model.CensorRule{Id: 1, Word: "damn", Replacement: "***", Active: true})

	if got := svc.Censor("damn it"); got != "damn it" {
		t.Fatalf("未加载快照前应原样返回，实际 %q", got)
	}
	if svc.Version() != 0 {
		t.Fatalf("未加载快照版本应为 0")
	}
}

func TestReloadAndCensor(t *testing.T) {
	svc, _ := newTestService(
		model.CensorRule{Id: 1, Word: "damn", Replacement: "***", Active: true},
		model.CensorRule{Id: 2, Word: "笨蛋", Replacement: "**", Active: true},
		model.CensorRule{Id: 3, Word: "off", Replacement: "xxx", Active: false},
	)

	version, err := svc.Reload()
	if err != nil {
		t.Fatalf("重载失败: %v", err)
	}
	if version == 0 || svc.Version() != version {
		t.Fatalf("版本应非零且与快照一致")
	}

	cases := []struct {
		in   string
		want string
	}{
		{"damn it", "*** it"},
		{"DAMN IT", "*** IT"},     // 大小写不敏感
		{"DaMn 你这个笨蛋", "*** 你这个**"}, // 多条规则叠加
		{"clean text", "clean text"},
		{"turn off", "turn off"}, // 停用规则不生效
	}
	for _, tc := range cases {
		if got := svc.Censor(tc.in); got != tc.want {
			t.Fatalf("Censor(%q) 应为 %q，实际 %q", tc.in, tc.want, got)
		}
	}
}

func TestReloadSkipsBlankWords(t *testing.T) {
	svc, _ := newTestService(
		model.CensorRule{Id: 1, Word: "   ", Replacement: "***", Active: true},
		model.CensorRule{Id: 2, Word: "bad", Replacement: "*", Active: true},
	)

	if _, err := svc.Reload(); err != nil {
		t.Fatalf("重载失败: %v", err)
	}
	rules := svc.GetClientRules()
	if len(rules.Rules) != 1 || rules.Rules[0].Pattern != "bad" {
		t.Fatalf("空白词应被跳过，实际 %+v", rules.Rules)
	}
}

func TestWordTreatedAsLiteral(t *testing.T) {
	svc, _ := newTestService(model.CensorRule{Id: 1, Word: "a.b", Replacement: "*", Active: true})

	if _, err := svc.Reload(); err != nil {
		t.Fatalf("重载失败: %v", err)
	}
	if got := svc.Censor("a.b axb"); got != "* axb" {
		t.Fatalf("词应按字面量匹配而非正则，实际 %q", got)
	}
}

func TestReloadSwapsSnapshot(t *testing.T) {
	svc, repo := newTestService(model.CensorRule{Id: 1, Word: "old", Replacement: "*", Active: true})

	firstVersion, err := svc.Reload()
	if err != nil {
		t.Fatalf("重载失败: %v", err)
	}
	if got := svc.Censor("old word"); got != "* word" {
		t.Fatalf("首版规则应生效，实际 %q", got)
	}

	// 版本取毫秒时间戳，隔开一点再换新
	time.Sleep(2 * time.Millisecond)
	repo.rules = []model.CensorRule{{Id: 2, Word: "new", Replacement: "#", Active: true}}
	secondVersion, err := svc.Reload()
	if err != nil {
		t.Fatalf("重载失败: %v", err)
	}
	if secondVersion <= firstVersion {
		t.Fatalf("新版本号应大于旧版本号")
	}
	if got := svc.Censor("old new"); got != "old #" {
		t.Fatalf("换入新快照后旧规则应失效，实际 %q", got)
	}
}

func TestGetClientRules(t *testing.T) {
	svc, _ := newTestService(model.CensorRule{Id: 1, Word: "bad", Replacement: "*", Active: true})

	if _, err := svc.Reload(); err != nil {
		t.Fatalf("重载失败: %v", err)
	}
	rules := svc.GetClientRules()
	if rules.Version != svc.Version() {
		t.Fatalf("下发版本应与快照一致")
	}
	if len(rules.Rules) != 1 {
		t.Fatalf("应下发 1 条规则")
	}
	got := rules.Rules[0]
	if got.Pattern != "bad" || got.Replacement != "*" || !got.CaseInsensitive {
		t.Fatalf("规则下发形态不正确: %+v", got)
	}
}

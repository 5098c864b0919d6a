package hub

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"mall_social_server/internal/config"
)

func receive(t *testing.T, sub *Subscriber) Envelope {
	t.Helper()
	select {
	case payload := <-sub.Send:
		var env Envelope
		if err := json.Unmarshal(payload, &env); err != nil {
			t.Fatalf("信封解析失败: %v", err)
		}
		return env
	default:
		t.Fatalf("订阅者 %s 收件箱为空", sub.Id)
	}
	return Envelope{}
}

func TestChannelNames(t *testing.T) {
	if got := UserChannel(42); got != "user:42" {
		t.Fatalf("用户频道应为 user:42，实际 %q", got)
	}
	if got := TicketChannel(7); got != "ticket:7" {
		t.Fatalf("工单频道应为 ticket:7，实际 %q", got)
	}
}

func TestPublishFanOut(t *testing.T) {
	h := NewHub(nil)
	first := NewSubscriber("c1", UserChannel(1))
	second := NewSubscriber("c2", UserChannel(1))
	other := NewSubscriber("c3", UserChannel(2))
	for _, sub := range []*Subscriber{first, second, other} {
		h.Subscribe(sub)
	}

	if err := h.Publish(context.Background(), UserChannel(1), EventReceiveDirect, map[string]int{"x": 1}); err != nil {
		t.Fatalf("广播失败: %v", err)
	}

	// 同频道两个订阅者都收到，其他频道收不到
	for _, sub := range []*Subscriber{first, second} {
		env := receive(t, sub)
		if env.Channel != UserChannel(1) || env.Event != EventReceiveDirect {
			t.Fatalf("信封不正确: %+v", env)
		}
	}
	if len(other.Send) != 0 {
		t.Fatalf("其他频道的订阅者不应收到消息")
	}
}

func TestPublishWithoutSubscribers(t *testing.T) {
	h := NewHub(nil)
	if err := h.Publish(context.Background(), UserChannel(1), EventReceiveDirect, nil); err != nil {
		t.Fatalf("无订阅者广播应静默成功: %v", err)
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	h := NewHub(nil)
	sub := NewSubscriber("c1", UserChannel(1), TicketChannel(5))
	h.Subscribe(sub)
	if h.SubscriberCount(UserChannel(1)) != 1 || h.SubscriberCount(TicketChannel(5)) != 1 {
		t.Fatalf("订阅后两个频道都应有该订阅者")
	}

	h.Unsubscribe(sub)
	if h.SubscriberCount(UserChannel(1)) != 0 || h.SubscriberCount(TicketChannel(5)) != 0 {
		t.Fatalf("退订后频道应为空")
	}
	if err := h.Publish(context.Background(), UserChannel(1), EventReceiveDirect, nil); err != nil {
		t.Fatalf("广播失败: %v", err)
	}
	if len(sub.Send) != 0 {
		t.Fatalf("退订后不应再收到消息")
	}
}

func TestEnvelopeShape(t *testing.T) {
	env, err := NewEnvelope(TicketChannel(5), EventTicketMessage, map[string]string{"text": "hi"})
	if err != nil {
		t.Fatalf("组装信封失败: %v", err)
	}
	payload, err := json.Marshal(env)
	if err != nil {
		t.Fatalf("序列化失败: %v", err)
	}
	var decoded map[string]json.RawMessage
	if err := json.Unmarshal(payload, &decoded); err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	for _, key := range []string{"channel", "event", "data"} {
		if _, ok := decoded[key]; !ok {
			t.Fatalf("信封应包含字段 %q: %s", key, payload)
		}
	}

	// 无内容事件省略 data 字段
	env, err = NewEnvelope(TicketChannel(5), EventTicketChanged, nil)
	if err != nil {
		t.Fatalf("组装信封失败: %v", err)
	}
	payload, _ = json.Marshal(env)
	decoded = nil
	if err := json.Unmarshal(payload, &decoded); err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	if _, ok := decoded["data"]; ok {
		t.Fatalf("无内容事件不应携带 data 字段: %s", payload)
	}
}

func TestDeliverTo(t *testing.T) {
	h := NewHub(nil)
	joining := NewSubscriber("c1", TicketChannel(5))
	existing := NewSubscriber("c2", TicketChannel(5))
	h.Subscribe(joining)
	h.Subscribe(existing)

	h.DeliverTo(joining, EventJoined, map[string]int64{"ticketId": 5})

	env := receive(t, joining)
	if env.Event != EventJoined {
		t.Fatalf("事件应为 %s，实际 %s", EventJoined, env.Event)
	}
	if len(existing.Send) != 0 {
		t.Fatalf("定向投递不应波及频道里的其他订阅者")
	}
}

func TestFullInboxDropsMessage(t *testing.T) {
	h := NewHub(nil)
	slow := NewSubscriber("c1", UserChannel(1))
	h.Subscribe(slow)

	// 填满收件箱后继续广播不应阻塞
	for i := 0; i < cap(slow.Send)+3; i++ {
		if err := h.Publish(context.Background(), UserChannel(1), EventReceiveDirect, i); err != nil {
			t.Fatalf("广播失败: %v", err)
		}
	}
	if len(slow.Send) != cap(slow.Send) {
		t.Fatalf("收件箱应恰好装满，实际 %d/%d", len(slow.Send), cap(slow.Send))
	}
}

func TestSubscriberBufferMatchesConfig(t *testing.T) {
	sub := NewSubscriber("c1", UserChannel(1))
	if want := config.GetConfig().HubConfig.ChannelSize; cap(sub.Send) != want {
		t.Fatalf("收件箱缓冲应为配置的 %d，实际 %d", want, cap(sub.Send))
	}
}

// TestUnsubscribeExcludesInFlightDelivery 退订与广播并发
// Unsubscribe 返回后不允许再有投递触及该订阅者，连接关闭收件箱必须是安全的
func TestUnsubscribeExcludesInFlightDelivery(t *testing.T) {
	h := NewHub(nil)
	stop := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
					if err := h.Publish(context.Background(), UserChannel(1), EventReceiveDirect, nil); err != nil {
						t.Errorf("广播失败: %v", err)
						return
					}
				}
			}
		}()
	}

	for i := 0; i < 200; i++ {
		sub := NewSubscriber(fmt.Sprintf("c%d", i), UserChannel(1))
		h.Subscribe(sub)
		h.Unsubscribe(sub)
		close(sub.Send)
	}

	close(stop)
	wg.Wait()
}

func TestMultiChannelSubscriber(t *testing.T) {
	h := NewHub(nil)
	sub := NewSubscriber("c1", UserChannel(1), TicketChannel(5))
	h.Subscribe(sub)

	if err := h.Publish(context.Background(), UserChannel(1), EventReceiveDirect, nil); err != nil {
		t.Fatalf("广播失败: %v", err)
	}
	if err := h.Publish(context.Background(), TicketChannel(5), EventTicketMessage, nil); err != nil {
		t.Fatalf("广播失败: %v", err)
	}

	if first := receive(t, sub); first.Channel != UserChannel(1) {
		t.Fatalf("第一条应来自用户频道，实际 %+v", first)
	}
	if second := receive(t, sub); second.Channel != TicketChannel(5) {
		t.Fatalf("第二条应来自工单频道，实际 %+v", second)
	}
}

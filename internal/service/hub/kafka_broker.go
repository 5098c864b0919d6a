// Package hub
// kafka_broker.go
// 核心职责：Kafka 模式的跨节点事件代理
// 1. 封装 Kafka 底层连接 (Writer/Reader)
// 2. 把信封写入 topic，并消费后投递给本节点订阅者
// 3. 纯技术组件，不包含业务逻辑
package hub

import (
	"context"
	"encoding/json"
	"time"

	myconfig "mall_social_server/internal/config"
	"mall_social_server/pkg/util/random"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// KafkaBroker Kafka 事件代理
type KafkaBroker struct {
	Producer *kafka.Writer
	Consumer *kafka.Reader
	cancel   context.CancelFunc
}

// NewKafkaBroker 按配置创建生产者和消费者
func NewKafkaBroker() *KafkaBroker {
	kafkaConfig := myconfig.GetConfig().KafkaConfig
	return &KafkaBroker{
		Producer: &kafka.Writer{
			Addr:                   kafka.TCP(kafkaConfig.HostPort),
			Topic:                  kafkaConfig.HubTopic,
			Balancer:               &kafka.Hash{},
			WriteTimeout:           kafkaConfig.Timeout * time.Second,
			RequiredAcks:           kafka.RequireNone,
			AllowAutoTopicCreation: false,
		},
		Consumer: kafka.NewReader(kafka.ReaderConfig{
			Brokers:        []string{kafkaConfig.HostPort},
			Topic:          kafkaConfig.HubTopic,
			CommitInterval: kafkaConfig.Timeout * time.Second,
			GroupID:        hubGroupId(),
			StartOffset:    kafka.LastOffset,
		}),
	}
}

// hubGroupId 生成本节点独立的消费组 id
// 每个节点各自成组，同一事件才会广播到所有节点；共用组名会退化成负载均衡，
// 其他节点的订阅者将收不到事件
func hubGroupId() string {
	return "hub-" + random.GetNowAndLenRandomString(8)
}

// Publish 把信封写入 topic
// key 取频道名，保证同一频道的事件落到同一分区、保持顺序
func (b *KafkaBroker) Publish(ctx context.Context, payload []byte) error {
	var env Envelope
	key := []byte(nil)
	if err := json.Unmarshal(payload, &env); err == nil {
		key = []byte(env.Channel)
	}
	return b.Producer.WriteMessages(ctx, kafka.Message{
		Key:   key,
		Value: payload,
	})
}

// Start 启动消费循环，把 topic 中的信封投递给本节点订阅者
func (b *KafkaBroker) Start(hub *Hub) {
	ctx, cancel := context.WithCancel(context.Background())
	b.cancel = cancel
	go func() {
		defer func() {
			if r := recover(); r != nil {
				zap.S().Errorf("kafka 消费协程 panic: %v", r)
			}
		}()
		for {
			kafkaMessage, err := b.Consumer.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				zap.L().Error(err.Error())
				continue
			}
			hub.DeliverLocal(kafkaMessage.Value)
		}
	}()
}

// Close 停止消费并关闭连接
func (b *KafkaBroker) Close() error {
	if b.cancel != nil {
		b.cancel()
	}
	if err := b.Producer.Close(); err != nil {
		zap.L().Error(err.Error())
	}
	return b.Consumer.Close()
}

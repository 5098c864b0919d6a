// Package hub
// conn.go
// 核心职责：WebSocket 连接生命周期管理
// 1. 建立 WebSocket 连接 (Upgrade)
// 2. 封装 UserConn 对象，管理读写协程 (Read/Write Loop)
// 3. 上行指令限流后交给业务层处理，下行事件从订阅收件箱推给前端
package hub

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"mall_social_server/internal/config"
	"mall_social_server/internal/dto/request"
	"mall_social_server/internal/dto/respond"
	"mall_social_server/pkg/errorx"
	"mall_social_server/pkg/util/random"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// CommandHandler 处理长连接上行指令的业务接口
// 由 direct 服务实现，推送结果经 Hub 广播，不走连接本地回写
type CommandHandler interface {
	SendDirect(ctx context.Context, senderId, receiverId int64, content string) (*respond.DirectMessagePayload, error)
	MarkRead(ctx context.Context, readerId, otherId int64, upTo time.Time) (*respond.ReadReceiptPayload, error)
}

// UserConn 一条 WebSocket 长连接
type UserConn struct {
	Conn    *websocket.Conn
	Sub     *Subscriber
	UserId  int64 // 工单游客连接为 0
	hub     *Hub
	handler CommandHandler
	limiter *rate.Limiter
	done    chan struct{}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  2048,
	WriteBufferSize: 2048,
	// 检查连接的Origin头
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// NewUserConn 升级 HTTP 连接并启动读写协程
// handler 为 nil 时连接是纯订阅端（工单频道旁听），上行数据被忽略
func NewUserConn(c *gin.Context, hub *Hub, handler CommandHandler, userId int64, channels ...string) (*UserConn, error) {
	wsConn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, err
	}
	hubConfig := config.GetConfig().HubConfig
	conn := &UserConn{
		Conn:    wsConn,
		Sub:     NewSubscriber(random.GetNowAndLenRandomString(8), channels...),
		UserId:  userId,
		hub:     hub,
		handler: handler,
		limiter: rate.NewLimiter(rate.Limit(hubConfig.SendRate), hubConfig.SendBurst),
		done:    make(chan struct{}),
	}
	hub.Subscribe(conn.Sub)
	go conn.Read()
	go conn.Write()
	zap.L().Info("ws连接成功")
	return conn, nil
}

// Read 读取前端消息并分发业务指令
func (c *UserConn) Read() {
	zap.L().Info("ws read goroutine start")
	defer c.close()
	for {
		_, jsonMessage, err := c.Conn.ReadMessage() // 阻塞状态
		if err != nil {
			zap.L().Error(err.Error())
			return // 直接断开websocket
		}
		if c.handler == nil {
			continue
		}
		if !c.limiter.Allow() {
			c.pushError(errorx.ErrRateLimited)
			continue
		}
		var command request.ChatCommandRequest
		if err := json.Unmarshal(jsonMessage, &command); err != nil {
			zap.L().Error(err.Error())
			c.pushError(errorx.ErrInvalidParam)
			continue
		}
		c.dispatch(command)
	}
}

// dispatch 执行上行指令，失败时把错误码推回本连接
func (c *UserConn) dispatch(command request.ChatCommandRequest) {
	ctx := context.Background()
	switch command.Op {
	case "send":
		if _, err := c.handler.SendDirect(ctx, c.UserId, command.ReceiverId, command.Content); err != nil {
			c.pushError(err)
		}
	case "mark_read":
		upTo, err := time.Parse(time.RFC3339, command.UpTo)
		if err != nil {
			c.pushError(errorx.ErrInvalidParam)
			return
		}
		if _, err := c.handler.MarkRead(ctx, c.UserId, command.OtherId, upTo); err != nil {
			c.pushError(err)
		}
	default:
		c.pushError(errorx.Newf(errorx.CodeInvalidParam, "未知指令: %s", command.Op))
	}
}

// Write 从订阅收件箱读取事件并推送给前端
func (c *UserConn) Write() {
	zap.L().Info("ws write goroutine start")
	for {
		select {
		case payload := <-c.Sub.Send: // 阻塞状态
			if err := c.Conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				zap.L().Error(err.Error())
				return // 直接断开websocket
			}
		case <-c.done:
			return
		}
	}
}

// pushError 把业务错误作为 error 事件写回本连接的收件箱
func (c *UserConn) pushError(err error) {
	env, marshalErr := NewEnvelope("", EventError, gin.H{
		"code": errorx.GetCode(err),
		"msg":  err.Error(),
	})
	if marshalErr != nil {
		zap.L().Error(marshalErr.Error())
		return
	}
	payload, marshalErr := json.Marshal(env)
	if marshalErr != nil {
		zap.L().Error(marshalErr.Error())
		return
	}
	select {
	case c.Sub.Send <- payload:
	default:
		zap.S().Warnf("连接 %s 收件箱已满，错误事件被丢弃", c.Sub.Id)
	}
}

// close 注销订阅并关闭底层连接
// 收件箱从不关闭：广播方随时可能持有它，写协程改由 done 信号退出
func (c *UserConn) close() {
	c.hub.Unsubscribe(c.Sub)
	close(c.done)
	if err := c.Conn.Close(); err != nil {
		zap.L().Error(err.Error())
	}
}

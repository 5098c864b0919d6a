package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"mall_social_server/internal/config"
	dao "mall_social_server/internal/dao/mysql"
	myredis "mall_social_server/internal/dao/redis"
	"mall_social_server/internal/handler"
	"mall_social_server/internal/https_server"
	"mall_social_server/internal/infrastructure/logger"
	"mall_social_server/internal/service"
	"mall_social_server/internal/service/hub"
	"mall_social_server/pkg/util/jwt"
	"mall_social_server/pkg/util/snowflake"

	"go.uber.org/zap"
)

func main() {
	// 1. 加载配置
	conf := config.GetConfig()

	// 2. 初始化日志
	if err := logger.Init(&conf.LogConfig, "dev"); err != nil {
		log.Fatalf("init logger failed: %v", err)
	}
	zap.L().Info("日志初始化成功")

	// 3. 初始化数据库
	dao.Init()
	zap.L().Info("数据库初始化成功")

	// 4. 初始化 Redis
	myredis.Init()
	zap.L().Info("Redis 初始化成功")

	// 5. 初始化 JWT 与雪花节点
	jwt.Init(conf.JWTConfig.Secret, conf.JWTConfig.AccessTokenExpiry, conf.JWTConfig.RefreshTokenExpiry)
	snowflake.Init()
	zap.L().Info("JWT 与雪花节点初始化成功")

	// 6. 初始化广播中心（kafka 模式注入跨节点代理）
	var broker hub.Broker
	if conf.HubConfig.MessageMode == "kafka" {
		broker = hub.NewKafkaBroker()
	}
	broadcastHub := hub.NewHub(broker)
	zap.L().Info("广播中心初始化成功", zap.String("mode", conf.HubConfig.MessageMode))

	// 7. 初始化 Service 层 (依赖注入)
	service.InitServices(dao.Repos, broadcastHub, myredis.Svc)
	zap.L().Info("Service 层初始化成功")

	// 8. 启动时加载敏感词快照
	if conf.FilterConfig.ReloadOnStart {
		if _, err := service.Svc.Filter.Reload(); err != nil {
			zap.L().Warn("敏感词快照加载失败，首次请求前需手动重载", zap.Error(err))
		}
	}

	// 9. 初始化参数校验翻译器
	if err := handler.InitTrans("zh"); err != nil {
		zap.L().Fatal("翻译器初始化失败", zap.Error(err))
	}

	// 10. 初始化 HTTPS 服务器
	handlers := handler.NewHandlers(service.Svc)
	engine := https_server.Init(handlers)
	zap.L().Info("HTTPS 服务器初始化成功")

	// 11. 启动服务
	host := conf.MainConfig.Host
	port := conf.MainConfig.Port
	go func() {
		if err := engine.Run(fmt.Sprintf("%s:%d", host, port)); err != nil {
			zap.L().Fatal("server running fault", zap.Error(err))
		}
	}()

	// 设置信号监听
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// 等待信号
	<-quit

	zap.L().Info("关闭服务器...")
	if err := broadcastHub.Close(); err != nil {
		zap.L().Error("关闭广播中心失败", zap.Error(err))
	}
	zap.L().Info("服务器已关闭")
}

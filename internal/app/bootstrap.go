package app

import (
	"errors"

	"github.com/inkstone-cms/internal/config"
	"github.com/inkstone-cms/internal/provider"
	"github.com/inkstone-cms/internal/router"
)

// BuildServer 组装依赖容器和路由，构建 HTTP 服务
func BuildServer(cfg *config.Config) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	container := provider.NewContainer(cfg)
	engine := router.SetupRouter(cfg, container)
	addr := cfg.Server.Host + ":" + cfg.Server.Port

	return NewServer(addr, engine), nil
}

// Run 应用启动入口
func Run(opts Options) error {
	if opts.Config == nil {
		return errors.New("config is nil")
	}

	server, err := BuildServer(opts.Config)
	if err != nil {
		return err
	}
	return server.Run(opts)
}

package wire

import (
	"Ripple/internal/api"
	"Ripple/internal/api/config"
	"Ripple/internal/api/handler"
	"Ripple/internal/job"
	"Ripple/internal/pkg/cron"
	"Ripple/internal/pkg/kafka"
	"Ripple/internal/repository"
	"Ripple/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router       *gin.Engine
	DB           *gorm.DB
	CronMgr      *cron.Manager
	KafkaManager *kafka.ConsumerManager
	Producer     kafka.PublishProducer
}

func BuildApplication(db *gorm.DB, cfg *config.Config) (*ApplicationContainer, error) {
	userRepo := repository.NewUserRepo(db)
	userFollowRepo := repository.NewUserFollowRepo(db)
	postRepo := repository.NewPostRepository(db)
	hashtagRepo := repository.NewHashtagRepository(db)
	actionRepo := repository.NewPostActionRepo(db)
	commentRepo := repository.NewCommentRepo(db)

	userFollowService := service.NewUserFollowService(userFollowRepo, userRepo)
	userService := service.NewUserService(userRepo, userFollowService)
	postService := service.NewPostService(postRepo, hashtagRepo, userRepo, commentRepo)
	postActionService := service.NewPostActionService(actionRepo, postRepo)
	commentService := service.NewCommentService(commentRepo, postRepo, userRepo)

	handlers := &api.HandlersGroup{
		UserHandler:       handler.NewUserHandler(userService),
		UserFollowHandler: handler.NewUserFollowHandler(userFollowService),
		PostHandler:       handler.NewPostHandler(postService),
		PostActionHandler: handler.NewPostActionHandler(postActionService),
		CommentHandler:    handler.NewCommentHandler(commentService),
		MediaHandler:      handler.NewMediaHandler(userService),
	}

	router := api.SetupRouter(handlers)

	producer, err := kafka.NewPublishProducer(cfg)
	if err != nil {
		return nil, err
	}

	publisher := job.NewPostPublisher(postRepo)
	publishHandler := kafka.NewPublishHandler(publisher)

	kafkaMgr, err := kafka.NewConsumerManager(cfg, publishHandler)
	if err != nil {
		return nil, err
	}

	scanJob := job.NewPublishScanJob(postRepo, producer)
	cronMgr := cron.NewCronManager(scanJob)

	return &ApplicationContainer{
		Router:       router,
		DB:           db,
		CronMgr:      cronMgr,
		KafkaManager: kafkaMgr,
		Producer:     producer,
	}, nil
}

package consts

const (
	TokenDenyKey          = "token:deny:"
	UserFollowerCountKey  = "user:follower:count:"
	UserFollowingCountKey = "user:following:count:"
	PostLikeCountKey      = "post:like:count:"
	PostCommentCountKey   = "post:comment:count:"
)

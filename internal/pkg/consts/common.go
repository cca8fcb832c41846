package consts

const (
	MimePrefixImage = "image"
)

const (
	DefaultAvatarURL = "default_avatar.png"
)

const (
	AvatarFolder    = "profile_images"
	PostImageFolder = "post_images"
)

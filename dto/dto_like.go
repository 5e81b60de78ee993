package dto

type LikeResponse struct {
	Message    string `json:"message,omitempty"`
	LikesCount int    `json:"likesCount"`
	IsLiked    bool   `json:"isLiked"`
}

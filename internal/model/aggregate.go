package model

// 计数字段不落库，每次读取时按已加载的集合重新计算

func likedBy(likes []*Like, viewerID string) bool {
	if viewerID == "" {
		return false
	}
	for _, l := range likes {
		if l.UserID == viewerID {
			return true
		}
	}
	return false
}

// Annotate 计算帖子及其评论、回复的派生字段，同时把 nil 切片规整为空切片
func (p *Post) Annotate(viewerID string) {
	if p.Media == nil {
		p.Media = []*PostMedia{}
	}
	if p.Likes == nil {
		p.Likes = []*Like{}
	}
	if p.Comments == nil {
		p.Comments = []*Comment{}
	}
	p.LikesCount = len(p.Likes)
	p.CommentsCount = len(p.Comments)
	p.IsLikedByMe = likedBy(p.Likes, viewerID)
	for _, c := range p.Comments {
		c.Annotate(viewerID)
	}
}

func (c *Comment) Annotate(viewerID string) {
	if c.Likes == nil {
		c.Likes = []*Like{}
	}
	if c.Replies == nil {
		c.Replies = []*Reply{}
	}
	c.LikesCount = len(c.Likes)
	c.RepliesCount = len(c.Replies)
	c.IsLikedByMe = likedBy(c.Likes, viewerID)
	for _, r := range c.Replies {
		r.Annotate(viewerID)
	}
}

func (r *Reply) Annotate(viewerID string) {
	if r.Likes == nil {
		r.Likes = []*Like{}
	}
	r.LikesCount = len(r.Likes)
	r.IsLikedByMe = likedBy(r.Likes, viewerID)
}

// TotalPages 向上取整
func TotalPages(total, limit int) int {
	if limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

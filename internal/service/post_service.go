package service

import (
	"context"
	"fmt"
	"social-feed-backend/internal/errors"
	"social-feed-backend/internal/model"
	"social-feed-backend/internal/repository/interfaces"
	"social-feed-backend/internal/storage"
	"social-feed-backend/internal/util"
	"strings"

	"go.uber.org/zap"
)

// postMediaFolder 帖子图片在对象存储中的目录
const postMediaFolder = "posts"

// PostService 处理帖子及其媒体的业务逻辑
type PostService struct {
	repo  interfaces.PostRepository
	media storage.MediaStore
}

// NewPostService 创建一个新的 PostService 实例
func NewPostService(repo interfaces.PostRepository, media storage.MediaStore) *PostService {
	return &PostService{repo: repo, media: media}
}

type CreatePostInput struct {
	AuthorID  string
	Content   string
	IsPrivate bool
	Files     []*model.MediaFile
}

type UpdatePostInput struct {
	AuthorID     string
	PostID       string
	Content      string
	IsPrivate    bool
	KeepMediaIDs []string
	Files        []*model.MediaFile
}

func trimmedContent(content string) *string {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// validatePostMedia 依次检查：文字和图片不能都为空、图片数量上限、文件类型
func validatePostMedia(content *string, mediaCount int, files []*model.MediaFile) error {
	if content == nil && mediaCount == 0 {
		return errors.New(errors.ErrValidation, "Post must contain text or at least one photo")
	}
	if mediaCount > model.MaxPostMedia {
		return errors.New(errors.ErrValidation, "Maximum 4 images are allowed")
	}
	for _, f := range files {
		if !util.IsImageContentType(f.ContentType) {
			return errors.New(errors.ErrValidation, "Only image files are allowed")
		}
	}
	return nil
}

// uploadMedia 顺序上传文件，每成功一个就登记一个撤销步骤。
// 任何一个失败时撤销已上传的文件并返回 ErrUploadFailed。
func (s *PostService) uploadMedia(ctx context.Context, files []*model.MediaFile, comp *compensator) ([]*model.PostMedia, error) {
	uploaded := make([]*model.PostMedia, 0, len(files))
	for _, f := range files {
		result, err := s.media.Upload(ctx, &storage.Object{
			Key:         util.GenerateObjectKey(postMediaFolder),
			ContentType: f.ContentType,
			Data:        f.Data,
		})
		if err != nil {
			util.Logger.Error("上传帖子图片失败",
				zap.Error(err),
				zap.String("filename", f.Filename),
				zap.Int("uploaded", comp.Len()))
			comp.Run(ctx)
			return nil, errors.Wrap(errors.ErrUploadFailed, "Media upload failed", err)
		}

		publicID := result.PublicID
		comp.Add("delete "+publicID, func(ctx context.Context) error {
			return s.media.Delete(ctx, publicID)
		})
		uploaded = append(uploaded, &model.PostMedia{
			URL:  result.URL,
			Type: util.MediaTypeFromFilename(f.Filename, result.Format),
		})
	}
	return uploaded, nil
}

// removeRemoteMedia 提交后清理远端文件，失败只记录日志
func (s *PostService) removeRemoteMedia(ctx context.Context, media []*model.PostMedia) {
	ctx = context.WithoutCancel(ctx)
	for _, m := range media {
		publicID := util.PublicIDFromURL(m.URL, postMediaFolder)
		if err := s.media.Delete(ctx, publicID); err != nil {
			util.Logger.Warn("删除远端图片失败",
				zap.Error(err),
				zap.String("media_id", m.ID),
				zap.String("public_id", publicID))
		}
	}
}

// reloadPost 在事务内重新读取帖子、媒体和作者
func reloadPost(ctx context.Context, tx interfaces.PostRepository, id string) (*model.Post, error) {
	post, err := tx.GetPostDetail(ctx, id)
	if err == nil && post == nil {
		err = fmt.Errorf("post %s not found after write", id)
	}
	return post, err
}

// CreatePost 上传图片后在一个事务中写入帖子和媒体记录
func (s *PostService) CreatePost(ctx context.Context, input CreatePostInput) (*model.Post, error) {
	content := trimmedContent(input.Content)
	if err := validatePostMedia(content, len(input.Files), input.Files); err != nil {
		return nil, err
	}

	util.Logger.Info("开始创建帖子", zap.String("author_id", input.AuthorID), zap.Int("files", len(input.Files)))

	comp := &compensator{}
	uploaded, err := s.uploadMedia(ctx, input.Files, comp)
	if err != nil {
		return nil, err
	}

	var created *model.Post
	err = s.repo.WithTx(ctx, func(tx interfaces.PostRepository) error {
		post := &model.Post{
			AuthorID:  input.AuthorID,
			Content:   content,
			IsPrivate: input.IsPrivate,
		}
		if err := tx.CreatePost(ctx, post); err != nil {
			return err
		}
		for i, m := range uploaded {
			m.PostID = post.ID
			m.Position = i
			if err := tx.CreateMedia(ctx, m); err != nil {
				return err
			}
		}
		var err error
		created, err = reloadPost(ctx, tx, post.ID)
		return err
	})
	if err != nil {
		util.Logger.Error("创建帖子事务失败", zap.Error(err), zap.String("author_id", input.AuthorID))
		comp.Run(ctx)
		return nil, errors.Wrap(errors.ErrDatabase, "Failed to create post", err)
	}
	comp.Discard()

	created.Annotate(input.AuthorID)
	util.Logger.Info("帖子创建成功", zap.String("post_id", created.ID), zap.Int("media", len(created.Media)))
	return created, nil
}

// loadOwnedPost 加载帖子并检查所有权
func (s *PostService) loadOwnedPost(ctx context.Context, authorID, postID, action string) (*model.Post, error) {
	post, err := s.repo.GetPostDetail(ctx, postID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "Failed to load post", err)
	}
	if post == nil {
		return nil, errors.New(errors.ErrResourceNotFound, "Post not found")
	}
	if post.AuthorID != authorID {
		util.Logger.Warn("非作者尝试修改帖子",
			zap.String("post_id", postID),
			zap.String("user_id", authorID),
			zap.String("action", action))
		return nil, errors.New(errors.ErrForbidden, "You are not allowed to "+action+" this post")
	}
	return post, nil
}

// UpdatePost 保留 keepMediaIDs 中的图片，上传新图片，提交后删除被移除的远端文件
func (s *PostService) UpdatePost(ctx context.Context, input UpdatePostInput) (*model.Post, error) {
	existing, err := s.loadOwnedPost(ctx, input.AuthorID, input.PostID, "update")
	if err != nil {
		return nil, err
	}

	// 只认属于该帖子的 id，避免无效 id 绕过"至少一张图片"的校验
	keep := make(map[string]bool, len(input.KeepMediaIDs))
	for _, id := range input.KeepMediaIDs {
		keep[id] = true
	}
	var kept, toDelete []*model.PostMedia
	nextPosition := 0
	for _, m := range existing.Media {
		if keep[m.ID] {
			kept = append(kept, m)
			if m.Position >= nextPosition {
				nextPosition = m.Position + 1
			}
		} else {
			toDelete = append(toDelete, m)
		}
	}

	content := trimmedContent(input.Content)
	if err := validatePostMedia(content, len(kept)+len(input.Files), input.Files); err != nil {
		return nil, err
	}

	comp := &compensator{}
	uploaded, err := s.uploadMedia(ctx, input.Files, comp)
	if err != nil {
		return nil, err
	}

	var updated *model.Post
	err = s.repo.WithTx(ctx, func(tx interfaces.PostRepository) error {
		if len(toDelete) > 0 {
			ids := make([]string, len(toDelete))
			for i, m := range toDelete {
				ids[i] = m.ID
			}
			if err := tx.DeleteMediaByIDs(ctx, ids); err != nil {
				return err
			}
		}
		// 新图片排在保留的图片之后
		for i, m := range uploaded {
			m.PostID = existing.ID
			m.Position = nextPosition + i
			if err := tx.CreateMedia(ctx, m); err != nil {
				return err
			}
		}
		existing.Content = content
		existing.IsPrivate = input.IsPrivate
		if err := tx.UpdatePost(ctx, existing); err != nil {
			return err
		}
		var err error
		updated, err = reloadPost(ctx, tx, existing.ID)
		return err
	})
	if err != nil {
		util.Logger.Error("更新帖子事务失败", zap.Error(err), zap.String("post_id", input.PostID))
		comp.Run(ctx)
		return nil, errors.Wrap(errors.ErrDatabase, "Failed to update post", err)
	}
	comp.Discard()

	s.removeRemoteMedia(ctx, toDelete)

	updated.Annotate(input.AuthorID)
	util.Logger.Info("帖子更新成功",
		zap.String("post_id", updated.ID),
		zap.Int("removed_media", len(toDelete)),
		zap.Int("added_media", len(uploaded)))
	return updated, nil
}

// DeletePost 先尽力删除远端文件，再删除数据库记录
func (s *PostService) DeletePost(ctx context.Context, authorID, postID string) error {
	post, err := s.loadOwnedPost(ctx, authorID, postID, "delete")
	if err != nil {
		return err
	}

	s.removeRemoteMedia(ctx, post.Media)

	err = s.repo.WithTx(ctx, func(tx interfaces.PostRepository) error {
		if err := tx.DeleteMediaByPostID(ctx, postID); err != nil {
			return err
		}
		return tx.DeletePost(ctx, postID)
	})
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, "Failed to delete post", err)
	}
	return nil
}

// GetPost 返回完整聚合，不做可见性过滤
func (s *PostService) GetPost(ctx context.Context, postID, viewerID string) (*model.Post, error) {
	post, err := s.repo.GetPostAggregate(ctx, postID)
	if err != nil {
		util.Logger.Error("获取帖子失败", zap.Error(err), zap.String("post_id", postID))
		return nil, errors.Wrap(errors.ErrDatabase, "Failed to fetch post", err)
	}
	if post == nil {
		return nil, errors.New(errors.ErrResourceNotFound, "Post not found")
	}
	post.Annotate(viewerID)
	return post, nil
}

func (s *PostService) listPosts(ctx context.Context, filter model.PostFilter) ([]*model.Post, error) {
	posts, err := s.repo.ListPostAggregates(ctx, filter)
	if err != nil {
		util.Logger.Error("获取帖子列表失败", zap.Error(err))
		return nil, errors.Wrap(errors.ErrDatabase, "Failed to fetch posts", err)
	}
	if posts == nil {
		posts = []*model.Post{}
	}
	for _, p := range posts {
		p.Annotate(filter.ViewerID)
	}
	return posts, nil
}

// ListPosts 公开帖子，加上 viewer 自己的私密帖子。viewerID 为空时只有公开帖子
func (s *PostService) ListPosts(ctx context.Context, viewerID string) ([]*model.Post, error) {
	return s.listPosts(ctx, model.PostFilter{ViewerID: viewerID})
}

// ListMyPosts 作者的全部帖子，包括私密帖子
func (s *PostService) ListMyPosts(ctx context.Context, authorID string) ([]*model.Post, error) {
	return s.listPosts(ctx, model.PostFilter{ViewerID: authorID, AuthorID: authorID})
}

func (s *PostService) ListPostLikers(ctx context.Context, postID string) ([]*model.Author, error) {
	users, err := s.repo.ListPostLikers(ctx, postID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "Failed to fetch likes", err)
	}
	if users == nil {
		users = []*model.Author{}
	}
	return users, nil
}

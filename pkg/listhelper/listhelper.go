// Package listhelper computes summary statistics over an in-memory list of blogs.
//
// Every function is pure: it reads its argument once, never modifies it and
// keeps no state between calls, so concurrent callers need no locking.
// A nil slice and an empty slice give the same result.
//
// Ties:
//   - FavoriteBlog keeps the first blog in input order among those sharing
//     the highest like count.
//   - MostBlogs and MostLikes group authors in order of first appearance and
//     keep the first author reaching the maximum. Callers should only depend
//     on getting "an author with the maximum", not on which one.
//
// Blogs without an author are grouped under the empty string.
package listhelper

import "github.com/akinalp/bloglist/models"

// Dummy always returns 1.
func Dummy(_ []models.Blog) int {
	return 1
}

// TotalLikes sums the likes of all blogs.
func TotalLikes(blogs []models.Blog) int {
	total := 0
	for i := range blogs {
		total += blogs[i].Likes
	}
	return total
}

// FavoriteBlog returns the blog with the most likes, projected onto title,
// author and likes. The running best starts at the zero value, so an empty
// list, or one where no blog has a like, yields FavoriteBlog{}.
func FavoriteBlog(blogs []models.Blog) models.FavoriteBlog {
	var favorite models.FavoriteBlog
	for i := range blogs {
		b := &blogs[i]
		if b.Likes > favorite.Likes {
			favorite = models.FavoriteBlog{
				Title:  b.Title,
				Author: b.AuthorName(),
				Likes:  b.Likes,
			}
		}
	}
	return favorite
}

// MostBlogs returns the author who wrote the most blogs, or nil for an empty list.
func MostBlogs(blogs []models.Blog) *models.AuthorBlogs {
	author, count, ok := maxByAuthor(blogs, func(*models.Blog) int { return 1 })
	if !ok {
		return nil
	}
	return &models.AuthorBlogs{Author: author, Blogs: count}
}

// MostLikes returns the author whose blogs have the most likes in total, or
// nil for an empty list.
func MostLikes(blogs []models.Blog) *models.AuthorLikes {
	author, likes, ok := maxByAuthor(blogs, func(b *models.Blog) int { return b.Likes })
	if !ok {
		return nil
	}
	return &models.AuthorLikes{Author: author, Likes: likes}
}

// Summarize runs every aggregate over blogs.
func Summarize(blogs []models.Blog) models.BlogStats {
	return models.BlogStats{
		TotalLikes:   TotalLikes(blogs),
		FavoriteBlog: FavoriteBlog(blogs),
		MostBlogs:    MostBlogs(blogs),
		MostLikes:    MostLikes(blogs),
	}
}

// maxByAuthor sums value(blog) per author and returns the author with the
// largest sum. ok is false only for an empty list.
func maxByAuthor(blogs []models.Blog, value func(*models.Blog) int) (author string, best int, ok bool) {
	if len(blogs) == 0 {
		return "", 0, false
	}

	// authors keeps first-appearance order; index maps an author to its slot.
	var (
		authors []string
		totals  []int
		index   = make(map[string]int)
	)
	for i := range blogs {
		b := &blogs[i]
		name := b.AuthorName()
		slot, seen := index[name]
		if !seen {
			slot = len(authors)
			index[name] = slot
			authors = append(authors, name)
			totals = append(totals, 0)
		}
		totals[slot] += value(b)
	}

	author, best = authors[0], totals[0]
	for i := 1; i < len(authors); i++ {
		if totals[i] > best {
			author, best = authors[i], totals[i]
		}
	}
	return author, best, true
}

package models

// FavoriteBlog is the projection returned for the most liked blog.
type FavoriteBlog struct {
	Title  string `json:"title" yaml:"title"`
	Author string `json:"author" yaml:"author"`
	Likes  int    `json:"likes" yaml:"likes"`
}

// AuthorBlogs is the author with the most blogs and how many they wrote.
type AuthorBlogs struct {
	Author string `json:"author" yaml:"author"`
	Blogs  int    `json:"blogs" yaml:"blogs"`
}

// AuthorLikes is the author with the most likes summed over their blogs.
type AuthorLikes struct {
	Author string `json:"author" yaml:"author"`
	Likes  int    `json:"likes" yaml:"likes"`
}

// BlogStats bundles every aggregate over a blog collection.
// MostBlogs and MostLikes are nil for an empty collection.
type BlogStats struct {
	TotalLikes   int          `json:"total_likes" yaml:"total_likes"`
	FavoriteBlog FavoriteBlog `json:"favorite_blog" yaml:"favorite_blog"`
	MostBlogs    *AuthorBlogs `json:"most_blogs" yaml:"most_blogs"`
	MostLikes    *AuthorLikes `json:"most_likes" yaml:"most_likes"`
}

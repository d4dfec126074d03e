// Package docrepo embeds an in-memory document repository in a Go program.
//
// Documents are saved with an optional caller-chosen ID. A missing ID is
// generated, and the created timestamp is assigned on the first save of an
// ID and never changes afterwards. Search combines up to five optional
// clauses (title prefixes, content substrings, author IDs, created range)
// with AND; an empty clause matches everything.
//
//	client, _ := docrepo.New(docrepo.WithLogger(slog.Default()))
//	doc, _ := client.Save(ctx, docrepo.Document{
//	    Title:  "Quarterly report",
//	    Author: docrepo.Author{ID: "a1", Name: "Ops"},
//	})
//	hits, _ := client.Search(ctx, docrepo.SearchRequest{
//	    TitlePrefixes: []string{"Quarterly"},
//	    AuthorIDs:     []string{"a1"},
//	})
//
// State lives for the lifetime of the Client; nothing is persisted.
package docrepo

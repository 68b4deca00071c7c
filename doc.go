package jsonapi

// Package jsonapi provides:
//
// - A normalized document model (Document, Object, Identifier, Relationship)
//   with a flattened included side-table deduplicated by resource identity
// - A deflate engine (Resource, Executor) that renders application values to
//   documents, applying sparse fieldsets and include paths from query
// - An inflate engine (Schema, Cursor, Seq) that reconstructs nested values
//   from flattened documents via a pull-based field protocol
// - A stable error model via Issues (JSON Pointer, code, message)
//
// Design policy:
// - Keep only public APIs in the root package; put detailed implementations
//   under internal/.
// - Place builders under dsl/, request parameters under query/, the generic
//   value model under value/, and the CLI under cmd/jsonapi.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	doc, err := jsonapi.ToDoc(ctx, articleDef.Bind(a), q)
//	data, err := jsonapi.ToBytes(doc)
//
//	article, err := jsonapi.FromBytes(ctx, data, articleSchema)

// Package verity embeds the news credibility classifier in a Go program.
//
// The client serves the trained artifact when one loads and the heuristic fallback otherwise,
// so Predict never fails for lack of a model:
//
//	client, _ := verity.New(ctx, verity.WithArtifact("models/verity.vrty"))
//	defer client.Close(ctx)
//
//	p, _ := client.Predict(ctx, "BREAKING: You won't believe this SHOCKING secret!!")
//	fmt.Println(p.Label, p.ConfidencePercent, p.Status)
//
// Predictions can be audited to Valkey, Redis or SQLite:
//
//	client, _ := verity.New(ctx,
//	    verity.WithArtifact("models/verity.vrty"),
//	    verity.WithSQLiteAudit("file:audit.db"),
//	)
package verity

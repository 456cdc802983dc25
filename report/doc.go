// Package report writes scoring results as TSV or JSON lines to a blob store.
//
// The TSV layout extends the classic rescoring table:
//
//	source target ph4_strict_tv ph4_ext_tv ph4_soft_tv ph4_rules_tv
//	ph4_strict_tc ph4_ext_tc ph4_soft_tc ph4_rules_tc
//	aligned_strict fingerprint_distance param_id class error
//
// A name ending in .zst or .lz4 is compressed. Writer keeps the set of
// pairs already reported so an interrupted run can resume.
package report

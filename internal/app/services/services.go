package services

// Services defined in this package:
// - AuthService: credential verification and session token issuance
// - AccessService: role resolution and visibility scoping
// - CurriculumService: program/subject/institution CRUD and link management
// - ProgressService: per-student progress and completion classification
// - OutstandingService: ungraded/failed/unanswered work collection
// - StudentRecordService: external credits and supplementary student info
// - DashboardService: orchestrates the three role views

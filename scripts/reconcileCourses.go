package main

import (
	"flag"
	"log"

	"lms/config"
	"lms/database"
	"lms/reconciler"
)

// Operator repair tool: runs the content linking reconciler over the whole
// catalog (or a single course with -course) and prints a report. Safe to run
// repeatedly; a pass over an already consistent catalog changes nothing.
func main() {
	courseID := flag.Uint("course", 0, "reconcile a single course id instead of the whole catalog")
	flag.Parse()

	// Load config and connect to database
	config.LoadConfig()
	database.ConnectDb()

	if *courseID > 0 {
		result, err := reconciler.ReconcileCourse(database.Database.Db, *courseID)
		if err != nil {
			log.Fatalf("Reconciliation failed: %v", err)
		}
		printResult(result)
		return
	}

	bulk, err := reconciler.ReconcileAllCourses(database.Database.Db)
	if err != nil {
		log.Fatalf("Reconciliation failed: %v", err)
	}

	for i := range bulk.Results {
		printResult(&bulk.Results[i])
	}
	for _, failure := range bulk.Failures {
		log.Printf("FAILED course %d (%s): %s", failure.CourseID, failure.CourseTitle, failure.Error)
	}

	log.Printf("=== Reconciliation Complete ===")
	log.Printf("Processed: %d", bulk.Processed)
	log.Printf("Successful: %d", bulk.Successful)
	log.Printf("Failed: %d", bulk.Failed)
}

func printResult(result *reconciler.Result) {
	log.Printf("Course %d (%s): %d content records, %d linked, %d created, %d changes, %d lectures",
		result.CourseID, result.CourseTitle, result.TotalContentRecords,
		result.Linked, result.Created, result.ChangesMade, result.FinalLectureCount)
	for _, skipped := range result.Skipped {
		log.Printf("  skipped %s (content %d): %s", skipped.Filename, skipped.ContentID, skipped.Reason)
	}
}

package pageobj

import "log"

func defaultLogf(format string, v ...interface{}) {
	log.Printf(format, v...)
}

func defaultErrorf(format string, v ...interface{}) {
	log.Printf("ERROR: "+format, v...)
}

func nopLogf(string, ...interface{}) {}

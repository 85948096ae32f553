package util

import (
	"encoding/json"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func SetResponse(data interface{}, status int, message string) map[string]interface{} {
	response := make(map[string]interface{})
	response["data"] = nil
	if data != nil {
		response["data"] = data
	}
	response["status"] = status
	response["message"] = message
	return response
}

func Contains(s []string, e string) bool {
	for _, a := range s {
		if a == e {
			return true
		}
	}
	return false
}

func ParseDate(createDate interface{}) time.Time {
	if newDate, ok := createDate.(primitive.DateTime); ok {
		return newDate.Time()
	} else if newDate, ok := createDate.(string); ok {
		parsedTime, _ := time.Parse(time.RFC3339Nano, newDate)
		return parsedTime
	}
	return time.Time{}
}

// PrettyPrint - print any value as indented json
func PrettyPrint(v interface{}) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Println(v)
		return
	}
	fmt.Println(string(b))
}

func RecoverGoroutinePanic(errChan chan<- error) {
	if r := recover(); r != nil {
		fmt.Println("Recovered from go routine panic:", r)
		if errChan != nil {
			errChan <- fmt.Errorf("error due to panic: %v", r)
		}
	}
}

func Recover() {
	if r := recover(); r != nil {
		fmt.Println("Recovered from panic:", r)
	}
}

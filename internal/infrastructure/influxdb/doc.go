// Package influxdb provides the InfluxDB connection used to record entity
// changes.
//
// It wraps the official influxdb-client-go v2 library with connection
// management, batched non-blocking writes and health checks. Points are
// built by package history.
//
// # Usage
//
//	client, err := influxdb.Connect(ctx, cfg.InfluxDB)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	rec := history.NewRecorder(client)
//	err = rec.Record(change)
//
// # Error Handling
//
// Writes are asynchronous. Their errors are delivered to the SetOnError
// callback. Connection and health check errors are returned directly.
package influxdb

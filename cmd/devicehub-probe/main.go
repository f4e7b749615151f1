// devicehub-probe provokes each DeviceService failure mode and prints the
// application error detail recovered from the response trailing metadata,
// once per invocation style.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"time"

	"go.uber.org/zap"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/devicehub/errstatus"
	"github.com/devicehub/errstatus/internal/client"
	"github.com/devicehub/errstatus/internal/config"
)

type CmdLineOpts struct {
	target string
	token  string
}

var (
	opts CmdLineOpts
)

func init() {
	flag.StringVar(&opts.target, "target", "localhost:50051", "devicehub server address")
	flag.StringVar(&opts.token, "token", "demo-token", "auth token presented to the server")
}

func main() {
	flag.Parse()
	logger, err := config.InitLogger("info")
	if err != nil {
		log.Fatalf("failed to initialize zap logger: %v", err)
	}
	defer logger.Sync()

	c, err := client.Dial(opts.target, logger.Named("Client"))
	if err != nil {
		log.Fatalf("failed to dial devicehub server: %v", err)
	}
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Blocking style, unknown device.
	_, err = c.GetDevice(ctx, opts.token, "acme", "missing-device")
	logFailure(logger, "blocking call", err)

	// Future style, unknown account.
	f := c.GetDeviceFuture(ctx, opts.token, "globex", "thermostat-1")
	_, err = f.Get(ctx)
	logFailure(logger, "future call", err)

	// Observer style, missing auth token.
	done := make(chan struct{})
	c.GetDeviceAsync(ctx, "", "acme", "thermostat-1", &logObserver{logger: logger, done: done})
	<-done

	// Streaming, unknown device.
	stream, err := c.WatchDevice(ctx, opts.token, "acme", "missing-device")
	if err != nil {
		logFailure(logger, "watch open", err)
		return
	}
	_, err = stream.Recv()
	logFailure(logger, "watch recv", err)
}

func logFailure(logger *zap.Logger, style string, err error) {
	if err == nil {
		logger.Info("call succeeded", zap.String("style", style))
		return
	}
	var e *errstatus.Error
	if !errors.As(err, &e) {
		logger.Error("call failed without error status", zap.String("style", style), zap.Error(err))
		return
	}
	logger.Info("recovered application error detail",
		zap.String("style", style),
		zap.Stringer("transportCode", e.Code()),
		zap.Stringer("errorStatus", e.ErrorStatus()))
}

type logObserver struct {
	logger *zap.Logger
	done   chan struct{}
}

func (o *logObserver) OnNext(resp *structpb.Struct) {
	o.logger.Info("observer got response", zap.Any("device", resp.AsMap()))
}

func (o *logObserver) OnError(err error) {
	logFailure(o.logger, "observer call", err)
	close(o.done)
}

func (o *logObserver) OnCompleted() {
	close(o.done)
}

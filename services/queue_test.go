package services_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"ytConvertBot/services"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("DownloadQueue", func() {
	It("never runs more jobs than workers", func() {
		queue := services.NewDownloadQueue(2)
		defer queue.Stop()

		var (
			running int32
			peak    int32
			wg      sync.WaitGroup
		)
		for i := 0; i < 6; i++ {
			wg.Add(1)
			go func() {
				defer GinkgoRecover()
				defer wg.Done()

				err := queue.Do(context.Background(), "https://youtu.be/abc", "test", func(context.Context) error {
					now := atomic.AddInt32(&running, 1)
					for {
						old := atomic.LoadInt32(&peak)
						if now <= old || atomic.CompareAndSwapInt32(&peak, old, now) {
							break
						}
					}
					time.Sleep(20 * time.Millisecond)
					atomic.AddInt32(&running, -1)
					return nil
				})
				Expect(err).NotTo(HaveOccurred())
			}()
		}
		wg.Wait()

		Expect(atomic.LoadInt32(&peak)).To(BeNumerically("<=", 2))
		Expect(queue.GetQueueStats()).To(Equal(services.QueueStats{Workers: 2}))
	})

	It("returns the job's error", func() {
		queue := services.NewDownloadQueue(1)
		defer queue.Stop()

		boom := errors.New("boom")
		err := queue.Do(context.Background(), "u", "test", func(context.Context) error { return boom })
		Expect(err).To(MatchError(boom))
	})

	It("rejects jobs after Stop", func() {
		queue := services.NewDownloadQueue(1)
		queue.Stop()

		called := false
		err := queue.Do(context.Background(), "u", "test", func(context.Context) error {
			called = true
			return nil
		})
		Expect(err).To(MatchError(services.ErrQueueStopped))
		Expect(called).To(BeFalse())
	})

	It("gives up waiting for a slot when the caller's context ends", func() {
		queue := services.NewDownloadQueue(1)
		defer queue.Stop()

		release := make(chan struct{})
		started := make(chan struct{})
		go func() {
			defer GinkgoRecover()
			_ = queue.Do(context.Background(), "u", "blocker", func(context.Context) error {
				close(started)
				<-release
				return nil
			})
		}()
		Eventually(started).Should(BeClosed())

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		err := queue.Do(ctx, "u", "waiter", func(context.Context) error { return nil })
		Expect(errors.Is(err, context.DeadlineExceeded)).To(BeTrue())

		Expect(queue.GetQueueStats().Processing).To(Equal(1))
		close(release)
	})
})

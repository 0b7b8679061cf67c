package main

import (
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"

	"github.com/GregMSThompson/expat-financier/infra/cloudrun"
	"github.com/GregMSThompson/expat-financier/infra/docker"
	"github.com/GregMSThompson/expat-financier/infra/firestore"
	"github.com/GregMSThompson/expat-financier/infra/provider"
)

func main() {
	pulumi.Run(func(ctx *pulumi.Context) error {
		// set default provider with the correct project
		prov, err := provider.SetupDefaultProvider(ctx)
		if err != nil {
			return err
		}

		// enable firestore and create the profiles database
		err = firestore.SetupFirestore(ctx, prov)
		if err != nil {
			return err
		}

		// create docker repo
		repo, err := docker.CreateCloudrunRepo(ctx, prov)
		if err != nil {
			return err
		}

		svc, err := cloudrun.SetupCloudRun(ctx, prov, repo)
		if err != nil {
			return err
		}

		// Telegram's setWebhook target
		ctx.Export("webhookUrl", svc.Statuses.Index(pulumi.Int(0)).Url().ApplyT(func(url *string) string {
			if url == nil {
				return ""
			}
			return *url + "/webhook"
		}))
		return nil
	})
}
